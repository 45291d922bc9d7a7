package services

import (
	"context"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type PublicService struct {
	profiles ports.ProfileService
	links    ports.LinkService
	log      *logging.Log
}

func NewPublicService(profiles ports.ProfileService, links ports.LinkService, log *logging.Log) *PublicService {
	return &PublicService{
		profiles: profiles,
		links:    links,
		log:      log.WithEntryName("PublicService"),
	}
}

// GetPublicProfile serves the page even when links fail to load; the list is empty then.
func (s *PublicService) GetPublicProfile(ctx context.Context, handle string) (*domain.PublicProfile, error) {
	account, err := s.profiles.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	profile := &domain.PublicProfile{
		Account: account.Public(),
		Links:   []domain.PublicLink{},
	}

	links, err := s.links.List(ctx, account.ID)
	if err != nil {
		s.log.WithRequest(ctx).WithErr(err).WithField("account_id", account.ID).Warn("serving profile without links")
		return profile, nil
	}

	for i := range links {
		if links[i].Active {
			profile.Links = append(profile.Links, links[i].Public())
		}
	}
	return profile, nil
}

var _ ports.PublicService = (*PublicService)(nil)
