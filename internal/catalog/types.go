package catalog

import "time"

// Audiences a product can be listed under. The storefront renders one
// collection page per audience.
const (
	AudienceKids    = "kids"
	AudienceWomen   = "women"
	AudienceMen     = "men"
	AudienceUnisex  = "unisex"
	AudienceCouples = "couples"
)

// Audiences lists every valid audience value.
var Audiences = []string{AudienceKids, AudienceWomen, AudienceMen, AudienceUnisex, AudienceCouples}

// IsValidAudience reports whether audience is one of the known collections.
func IsValidAudience(audience string) bool {
	for _, a := range Audiences {
		if a == audience {
			return true
		}
	}
	return false
}

// Product is a catalog entry.
type Product struct {
	ProductID   string    `json:"product_id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Audience    string    `json:"audience" dynamodbav:"audience"`
	Category    string    `json:"category,omitempty" dynamodbav:"category,omitempty"`
	Metal       string    `json:"metal,omitempty" dynamodbav:"metal,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" dynamodbav:"image_url,omitempty"`
	InStock     bool      `json:"in_stock" dynamodbav:"in_stock"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}
