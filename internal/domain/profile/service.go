package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"skilllink/internal/pkg/errs"
)

// Service resolves identities and assembles public worker pages
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve maps an authenticated email to a person and its role.
func (s *Service) Resolve(ctx context.Context, email string) (*Profile, error) {
	person, err := s.repo.GetPersonByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.profileFor(ctx, person)
}

// ResolveID is Resolve keyed by person id.
func (s *Service) ResolveID(ctx context.Context, personID int64) (*Profile, error) {
	person, err := s.repo.GetPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	return s.profileFor(ctx, person)
}

func (s *Service) profileFor(ctx context.Context, person *Person) (*Profile, error) {
	p := &Profile{Person: *person, Role: RoleClient}
	_, err := s.repo.GetWorker(ctx, person.ID)
	switch {
	case err == nil:
		id := person.ID
		p.Role = RoleWorker
		p.WorkerID = &id
	case !errors.Is(err, ErrWorkerNotFound):
		return nil, err
	}
	return p, nil
}

func (s *Service) PublicProfile(ctx context.Context, workerID int64) (*PublicProfile, error) {
	worker, err := s.repo.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	person, err := s.repo.GetPersonByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	page, err := s.repo.GetWorkerProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}
	services, err := s.repo.ListWorkerServices(ctx, workerID)
	if err != nil {
		return nil, err
	}
	certs, err := s.repo.ListCertifications(ctx, workerID)
	if err != nil {
		return nil, err
	}
	curricula, err := s.repo.ListCurricula(ctx, workerID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountCompletedJobs(ctx, workerID)
	if err != nil {
		return nil, err
	}

	experience := []Experience{}
	for _, cv := range curricula {
		if len(cv.Experience) == 0 {
			continue
		}
		var entries []Experience
		if err := json.Unmarshal(cv.Experience, &entries); err != nil {
			return nil, errs.Remote("decode curriculum", err)
		}
		experience = append(experience, entries...)
	}
	if services == nil {
		services = []ServiceSummary{}
	}
	if certs == nil {
		certs = []Certification{}
	}

	description := page.Description
	if strings.TrimSpace(description) == "" {
		description = DefaultDescription
	}

	return &PublicProfile{
		WorkerID:       workerID,
		Name:           person.DisplayName(),
		Comuna:         person.Comuna,
		Phone:          person.Phone,
		Verified:       worker.Verified,
		AverageRating:  worker.AverageRating,
		RatingCount:    worker.RatingCount,
		Description:    description,
		BannerURL:      page.BannerURL,
		ThemeColor:     page.ThemeColor,
		CategoryID:     page.CategoryID,
		Services:       services,
		Certifications: certs,
		Experience:     experience,
		CompletedJobs:  completed,
	}, nil
}

// UpdatePerson applies the non-nil fields. The name is split on its first space.
func (s *Service) UpdatePerson(ctx context.Context, personID int64, req *UpdatePersonRequest) (*Person, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		first, last, _ := strings.Cut(name, " ")
		updates["first_name"] = first
		updates["last_name"] = strings.TrimSpace(last)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Comuna != nil {
		updates["comuna"] = strings.TrimSpace(*req.Comuna)
	}
	if len(updates) > 0 {
		if err := s.repo.UpdatePerson(ctx, personID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetPersonByID(ctx, personID)
}

// UpdateTheme leaves empty fields untouched.
func (s *Service) UpdateTheme(ctx context.Context, workerID int64, req *UpdateThemeRequest) (*WorkerProfile, error) {
	if _, err := s.repo.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	banner := strings.TrimSpace(req.BannerURL)
	color := strings.TrimSpace(req.ThemeColor)
	if err := s.repo.UpsertTheme(ctx, workerID, banner, color); err != nil {
		return nil, err
	}
	return s.repo.GetWorkerProfile(ctx, workerID)
}

func (s *Service) FeaturedWorkers(ctx context.Context, limit int) ([]WorkerCard, error) {
	return s.listWorkers(ctx, WorkerFilter{Limit: limit})
}

func (s *Service) VerifiedWorkers(ctx context.Context, limit int) ([]WorkerCard, error) {
	return s.listWorkers(ctx, WorkerFilter{VerifiedOnly: true, Limit: limit})
}

func (s *Service) SearchProfessionals(ctx context.Context, query string, categoryID int64) ([]WorkerCard, error) {
	return s.listWorkers(ctx, WorkerFilter{Query: query, CategoryID: categoryID})
}

func (s *Service) listWorkers(ctx context.Context, f WorkerFilter) ([]WorkerCard, error) {
	cards, err := s.repo.ListWorkers(ctx, f)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []WorkerCard{}
	}
	return cards, nil
}

func (s *Service) AddCertification(ctx context.Context, workerID int64, req *AddCertificationRequest) (*Certification, error) {
	if _, err := s.repo.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	cert := &Certification{
		WorkerID: workerID,
		Name:     strings.TrimSpace(req.Name),
		Issuer:   strings.TrimSpace(req.Issuer),
		IssuedAt: req.IssuedAt,
	}
	if cert.Name == "" {
		return nil, errs.Validation("certification name must not be empty")
	}
	if err := s.repo.AddCertification(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// AddExperience stores the entries as one curriculum batch.
func (s *Service) AddExperience(ctx context.Context, workerID int64, entries []Experience) (*Curriculum, error) {
	if len(entries) == 0 {
		return nil, errs.Validation("at least one experience entry is required")
	}
	if _, err := s.repo.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, errs.Validation("invalid experience entries")
	}
	cv := &Curriculum{WorkerID: workerID, Experience: datatypes.JSON(raw)}
	if err := s.repo.AddCurriculum(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}
