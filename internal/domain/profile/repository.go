package profile

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skilllink/internal/database"
	"skilllink/internal/pkg/errs"
)

// Repository handles persistence for persons and worker pages
type Repository interface {
	CreateAccount(ctx context.Context, person *Person, asWorker bool) error
	GetPersonByEmail(ctx context.Context, email string) (*Person, error)
	GetPersonByID(ctx context.Context, id int64) (*Person, error)
	GetWorker(ctx context.Context, personID int64) (*Worker, error)
	GetWorkerProfile(ctx context.Context, workerID int64) (*WorkerProfile, error)
	UpdatePerson(ctx context.Context, id int64, updates map[string]any) error
	UpsertTheme(ctx context.Context, workerID int64, bannerURL, themeColor string) error

	ListWorkerServices(ctx context.Context, workerID int64) ([]ServiceSummary, error)
	ListCertifications(ctx context.Context, workerID int64) ([]Certification, error)
	ListCurricula(ctx context.Context, workerID int64) ([]Curriculum, error)
	CountCompletedJobs(ctx context.Context, workerID int64) (int64, error)
	ListWorkers(ctx context.Context, f WorkerFilter) ([]WorkerCard, error)

	AddCertification(ctx context.Context, cert *Certification) error
	AddCurriculum(ctx context.Context, cv *Curriculum) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAccount(ctx context.Context, person *Person, asWorker bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(person).Error; err != nil {
			return err
		}
		if !asWorker {
			return nil
		}
		if err := tx.Create(&Worker{PersonID: person.ID}).Error; err != nil {
			return err
		}
		return tx.Create(&WorkerProfile{WorkerID: person.ID, Description: DefaultDescription}).Error
	})
	if database.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return errs.Remote("create account", err)
}

func (r *repository) GetPersonByEmail(ctx context.Context, email string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, errs.Remote("get person", err)
	}
	return &p, nil
}

func (r *repository) GetPersonByID(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, errs.Remote("get person", err)
	}
	return &p, nil
}

func (r *repository) GetWorker(ctx context.Context, personID int64) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).Where("person_id = ?", personID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, errs.Remote("get worker", err)
	}
	return &w, nil
}

// GetWorkerProfile returns an empty profile when the worker never customised it.
func (r *repository) GetWorkerProfile(ctx context.Context, workerID int64) (*WorkerProfile, error) {
	var wp WorkerProfile
	err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).First(&wp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &WorkerProfile{WorkerID: workerID}, nil
	}
	if err != nil {
		return nil, errs.Remote("get worker profile", err)
	}
	return &wp, nil
}

func (r *repository) UpdatePerson(ctx context.Context, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Person{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return errs.Remote("update person", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func (r *repository) UpsertTheme(ctx context.Context, workerID int64, bannerURL, themeColor string) error {
	row := WorkerProfile{WorkerID: workerID, Description: DefaultDescription, BannerURL: bannerURL, ThemeColor: themeColor}
	cols := []string{"updated_at"}
	if bannerURL != "" {
		cols = append(cols, "banner_url")
	}
	if themeColor != "" {
		cols = append(cols, "theme_color")
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "worker_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&row).Error
	return errs.Remote("upsert theme", err)
}

func (r *repository) ListWorkerServices(ctx context.Context, workerID int64) ([]ServiceSummary, error) {
	var out []ServiceSummary
	err := r.db.WithContext(ctx).
		Table("services").
		Select("services.id, services.title, services.description, services.price, COALESCE(categories.name, ?) AS category_name", DefaultCategory).
		Joins("JOIN worker_services ON worker_services.service_id = services.id").
		Joins("LEFT JOIN categories ON categories.id = services.category_id").
		Where("worker_services.worker_id = ? AND services.state = ?", workerID, "A").
		Order("services.created_at DESC, services.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, errs.Remote("list worker services", err)
	}
	return out, nil
}

func (r *repository) ListCertifications(ctx context.Context, workerID int64) ([]Certification, error) {
	var out []Certification
	err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, errs.Remote("list certifications", err)
	}
	return out, nil
}

func (r *repository) ListCurricula(ctx context.Context, workerID int64) ([]Curriculum, error) {
	var out []Curriculum
	err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, errs.Remote("list curricula", err)
	}
	return out, nil
}

func (r *repository) CountCompletedJobs(ctx context.Context, workerID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("service_requests").
		Where("worker_id = ? AND state = ?", workerID, "FINALIZADO").
		Count(&n).Error
	if err != nil {
		return 0, errs.Remote("count completed jobs", err)
	}
	return n, nil
}

func (r *repository) ListWorkers(ctx context.Context, f WorkerFilter) ([]WorkerCard, error) {
	q := r.db.WithContext(ctx).
		Table("workers").
		Select(`workers.person_id AS worker_id, persons.first_name, persons.last_name, persons.comuna,
			workers.verified, workers.average_rating, workers.rating_count,
			COALESCE(worker_profiles.description, '') AS description, worker_profiles.category_id`).
		Joins("JOIN persons ON persons.id = workers.person_id").
		Joins("LEFT JOIN worker_profiles ON worker_profiles.worker_id = workers.person_id")

	if f.VerifiedOnly {
		q = q.Where("workers.verified = ?", true)
	}
	if f.CategoryID > 0 {
		q = q.Where("worker_profiles.category_id = ?", f.CategoryID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where(
			"LOWER(persons.first_name || ' ' || persons.last_name) LIKE ? OR LOWER(COALESCE(worker_profiles.description, '')) LIKE ?",
			like, like,
		)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []WorkerCard
	err := q.Order("workers.average_rating DESC, workers.rating_count DESC, workers.person_id ASC").Scan(&out).Error
	if err != nil {
		return nil, errs.Remote("list workers", err)
	}
	for i := range out {
		out[i].Name = strings.TrimSpace(out[i].FirstName + " " + out[i].LastName)
		if out[i].Description == "" {
			out[i].Description = DefaultDescription
		}
	}
	return out, nil
}

func (r *repository) AddCertification(ctx context.Context, cert *Certification) error {
	return errs.Remote("add certification", r.db.WithContext(ctx).Create(cert).Error)
}

func (r *repository) AddCurriculum(ctx context.Context, cv *Curriculum) error {
	return errs.Remote("add curriculum", r.db.WithContext(ctx).Create(cv).Error)
}
