package service

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"blogpress-backend/internal/domains/sitemap/model"
	"blogpress-backend/internal/domains/sitemap/repository"
)

type ServiceInterface interface {
	// Build renders the sitemap. It always returns a valid XML document:
	// if the database is unreachable the result degrades to the site root
	// alone rather than an error page.
	Build(ctx context.Context) []byte
}

type sitemapService struct {
	repo    repository.RepositoryInterface
	baseURL string
}

func NewSitemapService(repo repository.RepositoryInterface, baseURL string) ServiceInterface {
	return &sitemapService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

const lastModLayout = "2006-01-02"

func (s *sitemapService) Build(ctx context.Context) []byte {
	urls := []model.URL{{
		Loc:        s.baseURL + "/",
		LastMod:    time.Now().UTC().Format(lastModLayout),
		ChangeFreq: model.RootChangeFreq,
		Priority:   model.RootPriority,
	}}

	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Sitemap author query failed, serving root-only sitemap")
		return render(urls)
	}
	for _, a := range authors {
		urls = append(urls, model.URL{
			Loc:        s.baseURL + "/" + a.Handle,
			LastMod:    a.UpdatedAt.UTC().Format(lastModLayout),
			ChangeFreq: model.AuthorChangeFreq,
			Priority:   model.AuthorPriority,
		})
	}

	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Sitemap post query failed, serving partial sitemap")
		return render(urls)
	}
	for _, p := range posts {
		urls = append(urls, model.URL{
			Loc:        s.baseURL + "/" + p.AuthorHandle + "/" + p.Slug,
			LastMod:    p.UpdatedAt.UTC().Format(lastModLayout),
			ChangeFreq: model.PostChangeFreq,
			Priority:   model.PostPriority,
		})
	}

	return render(urls)
}

func render(urls []model.URL) []byte {
	set := model.URLSet{
		Xmlns: model.XMLNamespace,
		URLs:  urls,
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		// Marshal of a static struct cannot realistically fail; keep the
		// contract anyway.
		log.Error().Err(err).Msg("Sitemap marshal failed")
		body = []byte(`<urlset xmlns="` + model.XMLNamespace + `"></urlset>`)
	}

	return append([]byte(xml.Header), body...)
}
