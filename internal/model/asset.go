package model

// StoredAsset describes one uploaded-and-persisted image. Created once by the
// asset pipeline at upload time and never mutated afterwards.
type StoredAsset struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// Storage folders namespace asset paths by what the image is attached to.
const (
	FolderMain       = "products/main"
	FolderGallery    = "products/gallery"
	FolderVariations = "products/variations"
	FolderEdition    = "products/edition"
	FolderLaser      = "products/laser"
)
