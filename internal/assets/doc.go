// Package assets provides the stylesheets inlined into generated documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - styles compiled into the binary
//	    ├── FilesystemLoader  - styles from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the styles it overrides; any other name
// still resolves to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are validated so they cannot carry path components.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
