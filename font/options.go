package font

// Option configures Font loading.
type Option func(*config)

// config holds configuration for Font.
type config struct {
	parserName string
}

// defaultConfig returns the default load configuration.
func defaultConfig() config {
	return config{
		parserName: ParserXImage,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/sfnt.
// "freetype" selects github.com/golang/freetype/truetype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) Option {
	return func(c *config) {
		c.parserName = name
	}
}
