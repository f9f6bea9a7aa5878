package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/repository"
)

func newListingFixture() (*ListingService, *fakeListingStore, *fakePosterStore) {
	listings := newFakeListingStore()
	posters := newFakePosterStore()
	svc := NewListingService(listings, newUploadService(posters), zerolog.Nop())
	return svc, listings, posters
}

func validInput() ListingInput {
	return ListingInput{
		Title:       "Interstellar",
		Description: "A space epic.",
		ReleaseDate: "2014-11-07",
		Genre:       "Sci-Fi",
	}
}

func pngPoster() *PosterFile {
	return &PosterFile{Name: "poster.png", Reader: strings.NewReader("png bytes"), Size: 9}
}

func TestCreateListing(t *testing.T) {
	svc, _, posters := newListingFixture()
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)

	listing, err := svc.Create(ctx, validInput(), pngPoster())
	require.NoError(t, err)
	assert.NotZero(t, listing.ID)
	assert.True(t, strings.HasPrefix(listing.Poster, "/uploads/"))
	assert.Len(t, posters.files, 1)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	// round trip: fetched record matches the input field for field
	fetched, err := svc.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", fetched.Title)
	assert.Equal(t, "A space epic.", fetched.Description)
	assert.Equal(t, "2014-11-07", fetched.ReleaseDate)
	assert.Equal(t, "Sci-Fi", fetched.Genre)
	assert.Equal(t, listing.Poster, fetched.Poster)
}

func TestCreateListingMissingPoster(t *testing.T) {
	svc, listings, _ := newListingFixture()

	_, err := svc.Create(context.Background(), validInput(), nil)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.Empty(t, listings.listings)
}

func TestCreateListingBadPosterType(t *testing.T) {
	svc, listings, _ := newListingFixture()

	poster := &PosterFile{Name: "poster.exe", Reader: strings.NewReader("mz"), Size: 2}
	_, err := svc.Create(context.Background(), validInput(), poster)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Empty(t, listings.listings)
}

func TestCreateListingValidation(t *testing.T) {
	svc, _, _ := newListingFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ListingInput)
	}{
		{name: "missing title", mutate: func(in *ListingInput) { in.Title = "" }},
		{name: "title too long", mutate: func(in *ListingInput) { in.Title = strings.Repeat("x", 101) }},
		{name: "description too long", mutate: func(in *ListingInput) { in.Description = strings.Repeat("x", 501) }},
		{name: "genre too long", mutate: func(in *ListingInput) { in.Genre = strings.Repeat("x", 51) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.Create(ctx, input, pngPoster())
			assert.Error(t, err)
		})
	}
}

func TestUpdateListingKeepsPoster(t *testing.T) {
	svc, _, _ := newListingFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), pngPoster())
	require.NoError(t, err)

	input := validInput()
	input.Title = "Interstellar (Director's Cut)"

	updated, err := svc.Update(ctx, created.ID, input, nil)
	require.NoError(t, err)
	assert.Equal(t, "Interstellar (Director's Cut)", updated.Title)
	assert.Equal(t, created.Poster, updated.Poster, "poster unchanged without a new file")
}

func TestUpdateListingReplacesPoster(t *testing.T) {
	svc, _, posters := newListingFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), pngPoster())
	require.NoError(t, err)

	replacement := &PosterFile{Name: "new.jpg", Reader: strings.NewReader("jpg bytes"), Size: 9}
	updated, err := svc.Update(ctx, created.ID, validInput(), replacement)
	require.NoError(t, err)
	assert.NotEqual(t, created.Poster, updated.Poster)
	assert.Len(t, posters.files, 2, "old file is left for the sweep")
}

func TestUpdateListingInvalidPosterSilentlySkipped(t *testing.T) {
	svc, _, _ := newListingFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), pngPoster())
	require.NoError(t, err)

	input := validInput()
	input.Genre = "Drama"
	bad := &PosterFile{Name: "poster.exe", Reader: strings.NewReader("mz"), Size: 2}

	updated, err := svc.Update(ctx, created.ID, input, bad)
	require.NoError(t, err, "rejected replacement must not fail the update")
	assert.Equal(t, created.Poster, updated.Poster)
	assert.Equal(t, "Drama", updated.Genre)
}

func TestUpdateListingNotFound(t *testing.T) {
	svc, _, _ := newListingFixture()

	_, err := svc.Update(context.Background(), 42, validInput(), nil)
	assert.ErrorIs(t, err, repository.ErrListingNotFound)
}

func TestDeleteListing(t *testing.T) {
	svc, _, posters := newListingFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), pngPoster())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	remaining, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Len(t, posters.files, 1, "poster file is not deleted with the record")

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrListingNotFound)
}

func TestDeleteListingNotFound(t *testing.T) {
	svc, _, _ := newListingFixture()
	assert.ErrorIs(t, svc.Delete(context.Background(), 7), repository.ErrListingNotFound)
}

func TestGetListingNotFound(t *testing.T) {
	svc, _, _ := newListingFixture()
	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrListingNotFound)
}
