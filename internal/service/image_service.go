package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/config"
)

// Image is a provider-normalized stock photo search result.
type Image struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	URL         string `json:"url"`
	ThumbURL    string `json:"thumbUrl"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	AuthorURL   string `json:"authorUrl,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// ImageService proxies stock-photo search across the configured providers.
type ImageService interface {
	// Search queries one provider, or all of them when provider is empty or
	// "all". A provider failure in an all-provider search is logged and
	// skipped; it only becomes an error when every provider fails.
	Search(ctx context.Context, query, provider string, page, perPage int) ([]Image, error)
}

type imageService struct {
	unsplashKey string
	pexelsKey   string
	pixabayKey  string
	httpClient  *http.Client
	logger      zerolog.Logger
}

func NewImageService(cfg *config.Config, httpClient *http.Client, logger zerolog.Logger) ImageService {
	return &imageService{
		unsplashKey: cfg.UnsplashAccessKey,
		pexelsKey:   cfg.PexelsAPIKey,
		pixabayKey:  cfg.PixabayAPIKey,
		httpClient:  httpClient,
		logger:      logger.With().Str("service", "images").Logger(),
	}
}

func (s *imageService) Search(ctx context.Context, query, provider string, page, perPage int) ([]Image, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 12
	}

	switch provider {
	case "unsplash":
		return s.searchUnsplash(ctx, query, page, perPage)
	case "pexels":
		return s.searchPexels(ctx, query, page, perPage)
	case "pixabay":
		return s.searchPixabay(ctx, query, page, perPage)
	case "", "all":
		var all []Image
		var lastErr error
		for name, search := range map[string]func(context.Context, string, int, int) ([]Image, error){
			"unsplash": s.searchUnsplash,
			"pexels":   s.searchPexels,
			"pixabay":  s.searchPixabay,
		} {
			results, err := search(ctx, query, page, perPage)
			if err != nil {
				s.logger.Warn().Err(err).Str("provider", name).Msg("Image provider search failed")
				lastErr = err
				continue
			}
			all = append(all, results...)
		}
		if len(all) == 0 && lastErr != nil {
			return nil, lastErr
		}
		return all, nil
	default:
		return nil, apperr.New(apperr.KindValidation, "Unknown image provider %q", provider)
	}
}

func (s *imageService) searchUnsplash(ctx context.Context, query string, page, perPage int) ([]Image, error) {
	q := url.Values{
		"query":    {query},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var payload struct {
		Results []struct {
			ID             string `json:"id"`
			Description    string `json:"description"`
			AltDescription string `json:"alt_description"`
			Width          int    `json:"width"`
			Height         int    `json:"height"`
			URLs           struct {
				Regular string `json:"regular"`
				Thumb   string `json:"thumb"`
			} `json:"urls"`
			User struct {
				Name  string `json:"name"`
				Links struct {
					HTML string `json:"html"`
				} `json:"links"`
			} `json:"user"`
		} `json:"results"`
	}
	headers := map[string]string{"Authorization": "Client-ID " + s.unsplashKey}
	if err := s.getJSON(ctx, "https://api.unsplash.com/search/photos?"+q.Encode(), headers, &payload); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(payload.Results))
	for _, p := range payload.Results {
		desc := p.Description
		if desc == "" {
			desc = p.AltDescription
		}
		images = append(images, Image{
			ID:          "unsplash-" + p.ID,
			Provider:    "unsplash",
			URL:         p.URLs.Regular,
			ThumbURL:    p.URLs.Thumb,
			Description: desc,
			Author:      p.User.Name,
			AuthorURL:   p.User.Links.HTML,
			Width:       p.Width,
			Height:      p.Height,
		})
	}
	return images, nil
}

func (s *imageService) searchPexels(ctx context.Context, query string, page, perPage int) ([]Image, error) {
	q := url.Values{
		"query":    {query},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var payload struct {
		Photos []struct {
			ID              int    `json:"id"`
			Photographer    string `json:"photographer"`
			PhotographerURL string `json:"photographer_url"`
			Alt             string `json:"alt"`
			Width           int    `json:"width"`
			Height          int    `json:"height"`
			Src             struct {
				Large  string `json:"large"`
				Medium string `json:"medium"`
				Small  string `json:"small"`
			} `json:"src"`
		} `json:"photos"`
	}
	headers := map[string]string{"Authorization": s.pexelsKey}
	if err := s.getJSON(ctx, "https://api.pexels.com/v1/search?"+q.Encode(), headers, &payload); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(payload.Photos))
	for _, p := range payload.Photos {
		images = append(images, Image{
			ID:          fmt.Sprintf("pexels-%d", p.ID),
			Provider:    "pexels",
			URL:         p.Src.Large,
			ThumbURL:    p.Src.Small,
			Description: p.Alt,
			Author:      p.Photographer,
			AuthorURL:   p.PhotographerURL,
			Width:       p.Width,
			Height:      p.Height,
		})
	}
	return images, nil
}

func (s *imageService) searchPixabay(ctx context.Context, query string, page, perPage int) ([]Image, error) {
	q := url.Values{
		"key":      {s.pixabayKey},
		"q":        {query},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var payload struct {
		Hits []struct {
			ID            int    `json:"id"`
			Tags          string `json:"tags"`
			PreviewURL    string `json:"previewURL"`
			WebformatURL  string `json:"webformatURL"`
			LargeImageURL string `json:"largeImageURL"`
			User          string `json:"user"`
			UserID        int    `json:"user_id"`
			ImageWidth    int    `json:"imageWidth"`
			ImageHeight   int    `json:"imageHeight"`
		} `json:"hits"`
	}
	if err := s.getJSON(ctx, "https://pixabay.com/api/?"+q.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(payload.Hits))
	for _, p := range payload.Hits {
		images = append(images, Image{
			ID:          fmt.Sprintf("pixabay-%d", p.ID),
			Provider:    "pixabay",
			URL:         p.LargeImageURL,
			ThumbURL:    p.PreviewURL,
			Description: p.Tags,
			Author:      p.User,
			AuthorURL:   fmt.Sprintf("https://pixabay.com/users/%s-%d/", p.User, p.UserID),
			Width:       p.ImageWidth,
			Height:      p.ImageHeight,
		})
	}
	return images, nil
}

func (s *imageService) getJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstreamService, err, "Image provider request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperr.New(apperr.KindUpstreamAuth, "Image provider rejected the API key")
	}
	if resp.StatusCode != http.StatusOK {
		return apperr.New(apperr.KindUpstreamService, "Image provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindUpstreamService, err, "Malformed image provider response")
	}
	return nil
}
