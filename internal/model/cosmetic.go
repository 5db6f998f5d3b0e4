package model

import "time"

// Descriptor is the code/label pair the upstream API uses for type and rarity.
type Descriptor struct {
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
	BackendValue string `json:"backendValue"`
}

// Images holds the image references of a cosmetic.
type Images struct {
	SmallIcon string `json:"smallIcon"`
	Icon      string `json:"icon"`
}

// Cosmetic is a catalog item as returned by the upstream API.
// Nested objects are values so an absent object decodes to its zero value.
type Cosmetic struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        Descriptor `json:"type"`
	Rarity      Descriptor `json:"rarity"`
	Images      Images     `json:"images"`
	Added       time.Time  `json:"added"`
}

// CosmeticsResponse is the upstream /cosmetics document.
type CosmeticsResponse struct {
	Status int           `json:"status"`
	Data   CosmeticsData `json:"data"`
}

// CosmeticsData wraps the battle-royale cosmetic list.
type CosmeticsData struct {
	BR []Cosmetic `json:"br"`
}

// NewCosmeticsResponse is the upstream /cosmetics/new document.
type NewCosmeticsResponse struct {
	Status int              `json:"status"`
	Data   NewCosmeticsData `json:"data"`
}

// NewCosmeticsData describes the latest build and the items it introduced.
type NewCosmeticsData struct {
	Date          string            `json:"date"`
	Build         string            `json:"build"`
	PreviousBuild string            `json:"previousBuild"`
	Items         NewCosmeticsItems `json:"items"`
}

// NewCosmeticsItems groups new items by game mode.
type NewCosmeticsItems struct {
	BR []Cosmetic `json:"br"`
}

// ShopResponse is the upstream /shop document.
type ShopResponse struct {
	Status int      `json:"status"`
	Data   ShopData `json:"data"`
}

// ShopData holds the current shop rotation.
type ShopData struct {
	Hash      string      `json:"hash"`
	Date      string      `json:"date"`
	VbuckIcon string      `json:"vbuckIcon"`
	Entries   []ShopEntry `json:"entries"`
}

// ShopEntry is one listing: a single cosmetic or a bundle sold at one price.
type ShopEntry struct {
	RegularPrice int        `json:"regularPrice"`
	FinalPrice   int        `json:"finalPrice"`
	OfferID      string     `json:"offerId"`
	DevName      string     `json:"devName"`
	InDate       string     `json:"inDate"`
	OutDate      string     `json:"outDate"`
	Giftable     bool       `json:"giftable"`
	Refundable   bool       `json:"refundable"`
	BRItems      []Cosmetic `json:"brItems"`
}

// IsBundle reports whether the entry groups more than one cosmetic.
func (e *ShopEntry) IsBundle() bool {
	return len(e.BRItems) > 1
}
