package entity

import (
	"time"
)

// Document process status
const (
	DocStatusPending   = "PENDING"
	DocStatusProcessed = "PROCESSED"
	DocStatusFailed    = "FAILED"
)

// Document is an inbound travel document (chat text, PDF, image) as
// delivered by the intake layer. The payload is stored verbatim; the
// extraction pipeline never mutates it.
type Document struct {
	ID            string    `bson:"_id,omitempty"`
	Waid          string    `bson:"waid"`
	Filename      string    `bson:"filename"`
	ContentType   string    `bson:"contentType"`
	Title         string    `bson:"title"`
	Tags          string    `bson:"tags"`
	Payload       []byte    `bson:"payload"`
	ImageURL      string    `bson:"imageUrl,omitempty"`
	UploadedAt    time.Time `bson:"uploadedAt"`
	ProcessStatus string    `bson:"processStatus"`
	ProcessedAt   time.Time `bson:"processedAt,omitempty"`
	ErrorDetail   string    `bson:"errorDetail,omitempty"`
	FlightsFound  int       `bson:"flightsFound"`
	HotelsFound   int       `bson:"hotelsFound"`
}
