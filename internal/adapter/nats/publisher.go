package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/vietlinker/listing-service/internal/entity"
)

const (
	subjectListingCreated = "listing.created"
	subjectListingUpdated = "listing.updated"
	subjectListingDeleted = "listing.deleted"
)

type ListingEventPublisher struct {
	conn *nats.Conn
}

func NewListingEventPublisher(conn *nats.Conn) (*ListingEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &ListingEventPublisher{conn: conn}, nil
}

func (p *ListingEventPublisher) PublishListingCreated(ctx context.Context, l *entity.Listing) error {
	return p.publish(subjectListingCreated, l)
}

func (p *ListingEventPublisher) PublishListingUpdated(ctx context.Context, l *entity.Listing) error {
	return p.publish(subjectListingUpdated, l)
}

func (p *ListingEventPublisher) PublishListingDeleted(ctx context.Context, listingID string) error {
	return p.publish(subjectListingDeleted, map[string]string{"listing_id": listingID})
}

func (p *ListingEventPublisher) publish(subject string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message for subject %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message to NATS subject %s: %w", subject, err)
	}
	return nil
}
