package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/internal/pkg/errs"
	"skilllink/internal/testutil"
)

// Minimal shapes of tables owned by other packages that the profile queries join.
type testCategory struct {
	ID   int64
	Name string
}

func (testCategory) TableName() string { return "categories" }

type testService struct {
	ID          int64
	Title       string
	Description string
	Price       string
	CategoryID  *int64
	State       string
	CreatedAt   time.Time
}

func (testService) TableName() string { return "services" }

type testWorkerService struct {
	WorkerID  int64 `gorm:"primaryKey;autoIncrement:false"`
	ServiceID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (testWorkerService) TableName() string { return "worker_services" }

type testRequest struct {
	ID       int64
	WorkerID int64
	State    string
}

func (testRequest) TableName() string { return "service_requests" }

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	models := append(Models(), &testCategory{}, &testService{}, &testWorkerService{}, &testRequest{})
	db := testutil.DB(t, models...)
	return NewService(NewRepository(db)), db
}

func createPerson(t *testing.T, db *gorm.DB, first, last, email string, asWorker bool) *Person {
	t.Helper()
	p := &Person{FirstName: first, LastName: last, Email: email}
	require.NoError(t, NewRepository(db).CreateAccount(context.Background(), p, asWorker))
	return p
}

func TestResolveTagsRole(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	client := createPerson(t, db, "Ana", "Rojas", "ana@example.cl", false)
	worker := createPerson(t, db, "Luis", "Soto", "luis@example.cl", true)

	p, err := svc.Resolve(ctx, "ana@example.cl")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, p.Role)
	assert.Nil(t, p.WorkerID)
	assert.Equal(t, client.ID, p.Person.ID)

	p, err = svc.Resolve(ctx, "  LUIS@example.cl ")
	require.NoError(t, err)
	assert.Equal(t, RoleWorker, p.Role)
	require.NotNil(t, p.WorkerID)
	assert.Equal(t, worker.ID, *p.WorkerID)

	_, err = svc.Resolve(ctx, "nobody@example.cl")
	assert.ErrorIs(t, err, ErrPersonNotFound)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	_, db := setupService(t)
	createPerson(t, db, "Ana", "Rojas", "ana@example.cl", false)

	err := NewRepository(db).CreateAccount(context.Background(), &Person{FirstName: "Otra", Email: "ana@example.cl"}, true)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var workers int64
	require.NoError(t, db.Model(&Worker{}).Count(&workers).Error)
	assert.Zero(t, workers)
}

func TestPublicProfileAggregatesPage(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	w := createPerson(t, db, "Luis", "Soto", "luis@example.cl", true)

	cat := testCategory{ID: 4, Name: "Electricista"}
	require.NoError(t, db.Create(&cat).Error)
	active := testService{Title: "Instalaciones", Price: "A convenir", CategoryID: &cat.ID, State: "A"}
	inactive := testService{Title: "Viejo", State: "I"}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Create(&testWorkerService{WorkerID: w.ID, ServiceID: active.ID}).Error)
	require.NoError(t, db.Create(&testWorkerService{WorkerID: w.ID, ServiceID: inactive.ID}).Error)
	require.NoError(t, db.Create(&[]testRequest{
		{WorkerID: w.ID, State: "FINALIZADO"},
		{WorkerID: w.ID, State: "FINALIZADO"},
		{WorkerID: w.ID, State: "PENDIENTE"},
	}).Error)

	_, err := svc.AddCertification(ctx, w.ID, &AddCertificationRequest{Name: "SEC Clase D"})
	require.NoError(t, err)
	_, err = svc.AddExperience(ctx, w.ID, []Experience{{Role: "Electricista", Company: "Enel"}})
	require.NoError(t, err)
	_, err = svc.AddExperience(ctx, w.ID, []Experience{{Role: "Ayudante"}, {Role: "Maestro"}})
	require.NoError(t, err)

	page, err := svc.PublicProfile(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Soto", page.Name)
	assert.Equal(t, DefaultDescription, page.Description)
	require.Len(t, page.Services, 1)
	assert.Equal(t, "Electricista", page.Services[0].CategoryName)
	assert.Len(t, page.Certifications, 1)
	require.Len(t, page.Experience, 3)
	assert.Equal(t, "Enel", page.Experience[0].Company)
	assert.Equal(t, int64(2), page.CompletedJobs)
}

func TestPublicProfileUnknownWorker(t *testing.T) {
	svc, db := setupService(t)
	client := createPerson(t, db, "Ana", "Rojas", "ana@example.cl", false)

	_, err := svc.PublicProfile(context.Background(), client.ID)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestUpdatePersonSplitsName(t *testing.T) {
	svc, db := setupService(t)
	p := createPerson(t, db, "Ana", "Rojas", "ana@example.cl", false)

	name := "  María José Pérez "
	phone := "+56 9 1234 5678"
	updated, err := svc.UpdatePerson(context.Background(), p.ID, &UpdatePersonRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "María", updated.FirstName)
	assert.Equal(t, "José Pérez", updated.LastName)
	assert.Equal(t, phone, updated.Phone)

	blank := "   "
	_, err = svc.UpdatePerson(context.Background(), p.ID, &UpdatePersonRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdateThemeKeepsEmptyFields(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	w := createPerson(t, db, "Luis", "Soto", "luis@example.cl", true)

	page, err := svc.UpdateTheme(ctx, w.ID, &UpdateThemeRequest{BannerURL: "https://cdn.example.cl/b.png", ThemeColor: "#112233"})
	require.NoError(t, err)
	assert.Equal(t, "#112233", page.ThemeColor)

	page, err = svc.UpdateTheme(ctx, w.ID, &UpdateThemeRequest{ThemeColor: "#abcdef"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.cl/b.png", page.BannerURL)
	assert.Equal(t, "#abcdef", page.ThemeColor)
	assert.Equal(t, DefaultDescription, page.Description)
}

func TestWorkerListingsOrderAndFilter(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	a := createPerson(t, db, "Ana", "Electrica", "a@example.cl", true)
	b := createPerson(t, db, "Bruno", "Gasfiter", "b@example.cl", true)
	c := createPerson(t, db, "Carla", "Pintora", "c@example.cl", true)

	require.NoError(t, db.Model(&Worker{}).Where("person_id = ?", a.ID).Updates(map[string]any{"average_rating": 4.5, "rating_count": 2}).Error)
	require.NoError(t, db.Model(&Worker{}).Where("person_id = ?", b.ID).Updates(map[string]any{"average_rating": 4.5, "rating_count": 8, "verified": true}).Error)
	require.NoError(t, db.Model(&Worker{}).Where("person_id = ?", c.ID).Updates(map[string]any{"average_rating": 5}).Error)
	cat := int64(3)
	require.NoError(t, db.Model(&WorkerProfile{}).Where("worker_id = ?", c.ID).Updates(map[string]any{"category_id": cat, "description": "Pintura de interiores"}).Error)

	featured, err := svc.FeaturedWorkers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, []int64{featured[0].WorkerID, featured[1].WorkerID, featured[2].WorkerID})
	assert.Equal(t, "Carla Pintora", featured[0].Name)

	verified, err := svc.VerifiedWorkers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, b.ID, verified[0].WorkerID)

	found, err := svc.SearchProfessionals(ctx, "INTERIORES", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, c.ID, found[0].WorkerID)

	found, err = svc.SearchProfessionals(ctx, "bruno g", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.SearchProfessionals(ctx, "", cat)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, c.ID, found[0].WorkerID)
}
