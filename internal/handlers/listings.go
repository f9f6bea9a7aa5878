package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"afisha/internal/middleware"
	"afisha/internal/repository"
	"afisha/internal/service"
	"afisha/internal/web"
)

func (h HandlerSet) Index(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list listings failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	var username string
	if session, ok := middleware.SessionFrom(c); ok {
		username = session.Username
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Flash":    web.TakeFlash(c),
		"Username": username,
		"Listings": listings,
	})
}

func (h HandlerSet) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add.tmpl", gin.H{
		"Flash": web.TakeFlash(c),
	})
}

func (h HandlerSet) AddSubmit(c *gin.Context) {
	input := listingInputForm(c)
	poster, err := posterFile(c)
	if err != nil {
		h.log.Error().Err(err).Msg("read poster upload failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if poster != nil {
		defer poster.close()
	}

	_, err = h.listings.Create(c.Request.Context(), input, poster.file())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFile):
			web.SetFlash(c, "A poster file is required!")
		case errors.Is(err, service.ErrUnsupportedFileType):
			web.SetFlash(c, "Unsupported poster file format!")
		default:
			web.SetFlash(c, err.Error())
		}
		c.Redirect(http.StatusFound, "/add_afisha")
		return
	}

	web.SetFlash(c, "Listing added.")
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) EditPage(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		h.notFoundOrError(c, err, "load listing failed")
		return
	}

	c.HTML(http.StatusOK, "edit.tmpl", gin.H{
		"Flash":   web.TakeFlash(c),
		"Listing": listing,
	})
}

func (h HandlerSet) EditSubmit(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	input := listingInputForm(c)
	poster, err := posterFile(c)
	if err != nil {
		h.log.Error().Err(err).Msg("read poster upload failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if poster != nil {
		defer poster.close()
	}

	if _, err := h.listings.Update(c.Request.Context(), id, input, poster.file()); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			h.notFoundOrError(c, err, "")
			return
		}
		web.SetFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/edit_afisha/"+strconv.FormatInt(id, 10))
		return
	}

	web.SetFlash(c, "Listing updated.")
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) Delete(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	if err := h.listings.Delete(c.Request.Context(), id); err != nil {
		h.notFoundOrError(c, err, "delete listing failed")
		return
	}

	web.SetFlash(c, "Listing deleted.")
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) notFoundOrError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, repository.ErrListingNotFound) {
		web.SetFlash(c, "Listing not found.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	if logMsg != "" {
		h.log.Error().Err(err).Msg(logMsg)
	}
	c.String(http.StatusInternalServerError, "internal server error")
}

func listingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		web.SetFlash(c, "Listing not found.")
		c.Redirect(http.StatusFound, "/")
		return 0, false
	}
	return id, true
}

func listingInputForm(c *gin.Context) service.ListingInput {
	return service.ListingInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ReleaseDate: c.PostForm("release_date"),
		Genre:       c.PostForm("genre"),
	}
}

// uploadedPoster pairs the opened multipart part with its header so the
// handler can close it after the service is done.
type uploadedPoster struct {
	poster service.PosterFile
	closer func() error
}

func (u *uploadedPoster) file() *service.PosterFile {
	if u == nil {
		return nil
	}
	return &u.poster
}

func (u *uploadedPoster) close() {
	if u != nil && u.closer != nil {
		_ = u.closer()
	}
}

// posterFile extracts the optional "poster" form file. A form without the
// field yields (nil, nil); only a malformed request is an error.
func posterFile(c *gin.Context) (*uploadedPoster, error) {
	file, header, err := c.Request.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	return &uploadedPoster{
		poster: service.PosterFile{
			Name:   header.Filename,
			Reader: file,
			Size:   header.Size,
		},
		closer: file.Close,
	}, nil
}
