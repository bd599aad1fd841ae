package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS style by name.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the embedded style names, sorted.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
