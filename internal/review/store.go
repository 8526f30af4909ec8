package review

import (
	"context"
	"strings"
	"time"

	"Storefront/pkg/kit"
)

const (
	MinRating = 1
	MaxRating = 5

	DefaultUsername = "Anonymous"
)

type Review struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	ProductID int64     `json:"productId"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddInput struct {
	SessionID string
	ProductID int64
	Rating    int
	Title     string
	Comment   string
	Username  string
}

// Validate reports every violated field at once.
func (in AddInput) Validate() error {
	var errs kit.ValidationErrors
	if in.Rating < MinRating || in.Rating > MaxRating {
		errs = append(errs, kit.FieldError{Field: "rating", Rule: "range", Param: "1-5"})
	}
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, kit.FieldError{Field: "title", Rule: "required"})
	}
	if strings.TrimSpace(in.Comment) == "" {
		errs = append(errs, kit.FieldError{Field: "comment", Rule: "required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Store interface {
	// Add stores a review and refreshes the product's rating and review count.
	Add(ctx context.Context, in AddInput) (Review, error)
	List(ctx context.Context, productID int64) ([]Review, error)
}
