package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/repositories"
	"github.com/debatetab/tab-system/storage"
	"golang.org/x/sync/errgroup"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type CreateTournamentInput struct {
	Name            string                  `json:"name"`
	Slug            string                  `json:"slug"`
	Description     *string                 `json:"description"`
	Format          models.TournamentFormat `json:"format"`
	AllowShortMatch *bool                   `json:"allow_short_match"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	// GetFullByID loads the tournament with its teams and rounds.
	GetFullByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	roundRepo      repositories.RoundRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	roundRepo repositories.RoundRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		roundRepo:      roundRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.Format.Valid() {
		return nil, models.ErrUnknownFormat
	}

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}

	tournament := &models.Tournament{
		Name:            input.Name,
		Slug:            slug,
		Description:     input.Description,
		Format:          input.Format,
		Active:          true,
		AllowShortMatch: true,
	}
	if input.AllowShortMatch != nil {
		tournament.AllowShortMatch = *input.AllowShortMatch
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentSlugConflict) {
			return nil, ErrTournamentSlugConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) GetFullByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load teams for tournament %d: %w", id, err)
		}
		tournament.Teams = make([]models.Team, 0, len(teams))
		for _, team := range teams {
			tournament.Teams = append(tournament.Teams, *team)
		}
		return nil
	})

	g.Go(func() error {
		rounds, err := s.roundRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load rounds for tournament %d: %w", id, err)
		}
		tournament.Rounds = make([]models.Round, 0, len(rounds))
		for _, round := range rounds {
			tournament.Rounds = append(tournament.Rounds, *round)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, activeOnly bool) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for _, tournament := range tournaments {
		s.populateLogoURL(tournament)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, tournament *models.Tournament) error {
	if strings.TrimSpace(tournament.Name) == "" {
		return ErrTournamentNameRequired
	}
	if !tournament.Format.Valid() {
		return models.ErrUnknownFormat
	}

	err := s.tournamentRepo.Update(ctx, tournament)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentSlugConflict):
			return ErrTournamentSlugConflict
		}
		return fmt.Errorf("failed to update tournament %d: %w", tournament.ID, err)
	}
	return nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}

	if tournament.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			// The tournament row is gone; an orphaned object is not
			// worth failing the request over.
			s.logger.Warn("failed to delete tournament logo",
				slog.Int("tournament_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := "png"
	if contentType == "image/jpeg" {
		ext = "jpg"
	}
	key := fmt.Sprintf("tournaments/%d/logo.%s", id, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload logo for tournament %d: %w", id, err)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for tournament %d: %w", id, err)
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if tournament.LogoKey == nil || *tournament.LogoKey == "" {
		return
	}
	url := s.uploader.GetPublicURL(*tournament.LogoKey)
	if url != "" {
		tournament.LogoURL = &url
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
