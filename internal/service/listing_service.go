package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"afisha/internal/models"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
	maxGenreLen       = 50
)

type ListingStore interface {
	Create(ctx context.Context, listing models.Listing) (models.Listing, error)
	List(ctx context.Context) ([]models.Listing, error)
	GetByID(ctx context.Context, id int64) (models.Listing, error)
	Update(ctx context.Context, listing models.Listing) error
	Delete(ctx context.Context, id int64) error
}

type Uploader interface {
	Accept(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}

// PosterFile is an uploaded poster as the handler hands it over: the
// client-supplied filename plus the opened multipart part.
type PosterFile struct {
	Name   string
	Reader io.Reader
	Size   int64
}

type ListingInput struct {
	Title       string
	Description string
	ReleaseDate string
	Genre       string
}

func (in ListingInput) validate() error {
	switch {
	case in.Title == "" || in.Description == "" || in.ReleaseDate == "" || in.Genre == "":
		return fmt.Errorf("all fields are required")
	case len(in.Title) > maxTitleLen:
		return fmt.Errorf("title exceeds %d characters", maxTitleLen)
	case len(in.Description) > maxDescriptionLen:
		return fmt.Errorf("description exceeds %d characters", maxDescriptionLen)
	case len(in.Genre) > maxGenreLen:
		return fmt.Errorf("genre exceeds %d characters", maxGenreLen)
	}
	return nil
}

type ListingService struct {
	listings ListingStore
	uploads  Uploader
	log      zerolog.Logger
}

func NewListingService(listings ListingStore, uploads Uploader, log zerolog.Logger) *ListingService {
	return &ListingService{
		listings: listings,
		uploads:  uploads,
		log:      log,
	}
}

func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	return s.listings.List(ctx)
}

func (s *ListingService) Get(ctx context.Context, id int64) (models.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

// Create persists a new listing. The poster is mandatory; upload failures
// propagate and nothing is stored.
func (s *ListingService) Create(ctx context.Context, input ListingInput, poster *PosterFile) (models.Listing, error) {
	if err := input.validate(); err != nil {
		return models.Listing{}, err
	}
	if poster == nil {
		return models.Listing{}, ErrMissingFile
	}

	ref, err := s.uploads.Accept(ctx, poster.Name, poster.Reader, poster.Size)
	if err != nil {
		return models.Listing{}, err
	}

	listing, err := s.listings.Create(ctx, models.Listing{
		Title:       input.Title,
		Description: input.Description,
		ReleaseDate: input.ReleaseDate,
		Poster:      ref,
		Genre:       input.Genre,
	})
	if err != nil {
		return models.Listing{}, err
	}

	s.log.Info().Int64("listing_id", listing.ID).Str("title", listing.Title).Msg("listing created")
	return listing, nil
}

// Update overwrites every field with the supplied values. The poster is
// replaced only when a new file is supplied and passes validation; a
// rejected replacement keeps the existing poster without surfacing an error.
func (s *ListingService) Update(ctx context.Context, id int64, input ListingInput, poster *PosterFile) (models.Listing, error) {
	if err := input.validate(); err != nil {
		return models.Listing{}, err
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}

	if poster != nil {
		ref, err := s.uploads.Accept(ctx, poster.Name, poster.Reader, poster.Size)
		if err != nil {
			if !errors.Is(err, ErrUnsupportedFileType) {
				return models.Listing{}, err
			}
			s.log.Debug().Int64("listing_id", id).Str("filename", poster.Name).
				Msg("replacement poster rejected, keeping existing")
		} else {
			listing.Poster = ref
		}
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.ReleaseDate = input.ReleaseDate
	listing.Genre = input.Genre

	if err := s.listings.Update(ctx, listing); err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

// Delete removes the record only. The poster file stays on disk for the
// scheduled orphan sweep to collect.
func (s *ListingService) Delete(ctx context.Context, id int64) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("listing_id", id).Msg("listing deleted")
	return nil
}
