package assets

// DefaultStyleName is the embedded style used when none is configured.
const DefaultStyleName = "github"

// AssetLoader defines the contract for loading CSS styles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
