package models

// Asset is one browsable instrument in the asset catalog.
type Asset struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AssetGroup is a display grouping of related assets.
type AssetGroup struct {
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}
