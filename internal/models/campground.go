package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SentinelImageKey is the shared placeholder image assigned to seeded
// campgrounds. Many documents reference the same remote object, so it
// must never be deleted from the object store no matter what an update
// request asks for.
const SentinelImageKey = "unsplash-template"

// Image is a reference to a binary object held in the remote store.
type Image struct {
	Key string `bson:"key" json:"key"`
	URL string `bson:"url" json:"url"`
}

// Thumbnail derives a downscaled rendition URL from the stored URL.
// Nothing is persisted; the rendition is a delivery-time transform.
func (im Image) Thumbnail() string {
	if im.Key == SentinelImageKey {
		return im.URL
	}
	return strings.Replace(im.URL, "/upload", "/upload/w_200", 1)
}

// Geometry is a GeoJSON point, coordinates ordered [longitude, latitude].
type Geometry struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Campground struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Price       float64              `bson:"price" json:"price"`
	Description string               `bson:"description" json:"description"`
	Location    string               `bson:"location" json:"location"`
	Geometry    Geometry             `bson:"geometry" json:"geometry"`
	Images      []Image              `bson:"images" json:"images"`
	Author      primitive.ObjectID   `bson:"author" json:"author"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
