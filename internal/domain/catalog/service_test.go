package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/internal/domain/profile"
	"skilllink/internal/domain/subscription"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/testutil"
)

type mockGate struct {
	mock.Mock
}

func (m *mockGate) CheckPublish(ctx context.Context, tx *gorm.DB, workerID int64) error {
	args := m.Called(ctx, tx, workerID)
	return args.Error(0)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	models := append(profile.Models(), Models()...)
	models = append(models, subscription.Models()...)
	return testutil.DB(t, models...)
}

func newPerson(t *testing.T, db *gorm.DB, first, email string, asWorker bool) int64 {
	t.Helper()
	p := &profile.Person{FirstName: first, LastName: "Test", Email: email}
	require.NoError(t, profile.NewRepository(db).CreateAccount(context.Background(), p, asWorker))
	return p.ID
}

func allowAll() *mockGate {
	g := &mockGate{}
	g.On("CheckPublish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return g
}

func TestCreateServiceDefaultsAndListing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	worker := newPerson(t, db, "Luis", "luis@example.cl", true)
	require.NoError(t, db.Create(&Category{ID: 4, Name: "Electricista"}).Error)

	gate := allowAll()
	cat := New(NewRepository(db), gate)

	cid := int64(4)
	l, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: " Instalación eléctrica ", CategoryID: &cid})
	require.NoError(t, err)
	assert.Equal(t, "Instalación eléctrica", l.Title)
	assert.Equal(t, DefaultPrice, l.Price)
	assert.Equal(t, "Electricista", l.CategoryName)
	require.NotNil(t, l.WorkerID)
	assert.Equal(t, worker, *l.WorkerID)
	assert.Equal(t, "Luis Test", l.WorkerName)
	gate.AssertNumberOfCalls(t, "CheckPublish", 1)

	plain, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "Otro", Price: "$20.000"})
	require.NoError(t, err)
	assert.Equal(t, DefaultCategoryName, plain.CategoryName)
	assert.Equal(t, "$20.000", plain.Price)

	mine, err := cat.ListByWorker(ctx, worker)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateServiceErrors(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	worker := newPerson(t, db, "Luis", "luis@example.cl", true)
	client := newPerson(t, db, "Ana", "ana@example.cl", false)

	denied := &mockGate{}
	denied.On("CheckPublish", mock.Anything, mock.Anything, worker).Return(subscription.ErrPublicationLimit)
	cat := New(NewRepository(db), denied)

	_, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "Pintura"})
	assert.ErrorIs(t, err, subscription.ErrPublicationLimit)

	_, err = cat.CreateService(ctx, client, &CreateServiceRequest{Title: "Pintura"})
	assert.ErrorIs(t, err, ErrWorkerNotFound)

	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	missing := int64(99)
	cat = New(NewRepository(db), allowAll())
	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "x", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var n int64
	require.NoError(t, db.Model(&Service{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateServiceThroughPlanGate(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	worker := newPerson(t, db, "Luis", "luis@example.cl", true)

	plans := subscription.NewService(subscription.NewRepository(db))
	plan := subscription.Plan{Name: "Básico", MaxPublications: 2, MaxPortfolioItems: 1}
	require.NoError(t, db.Create(&plan).Error)
	cat := New(NewRepository(db), plans)

	_, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "uno"})
	assert.True(t, errs.Is(err, errs.KindLimitExceeded))
	assert.ErrorIs(t, err, subscription.ErrNoActivePlan)

	_, err = plans.Subscribe(ctx, worker, plan.ID)
	require.NoError(t, err)
	first, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "uno"})
	require.NoError(t, err)
	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "dos"})
	require.NoError(t, err)
	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "tres"})
	assert.ErrorIs(t, err, subscription.ErrPublicationLimit)

	off := StateInactive
	_, err = cat.UpdateService(ctx, worker, first.ID, &UpdateServiceRequest{State: &off})
	require.NoError(t, err)
	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "tres"})
	require.NoError(t, err)

	on := StateActive
	_, err = cat.UpdateService(ctx, worker, first.ID, &UpdateServiceRequest{State: &on})
	assert.ErrorIs(t, err, subscription.ErrPublicationLimit)
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	owner := newPerson(t, db, "Luis", "luis@example.cl", true)
	other := newPerson(t, db, "Pedro", "pedro@example.cl", true)
	require.NoError(t, db.Create(&Category{ID: 3, Name: "Pintura"}).Error)
	cat := New(NewRepository(db), allowAll())

	l, err := cat.CreateService(ctx, owner, &CreateServiceRequest{Title: "Pintura"})
	require.NoError(t, err)

	title := "Robado"
	_, err = cat.UpdateService(ctx, other, l.ID, &UpdateServiceRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotServiceOwner)
	assert.ErrorIs(t, cat.DeleteService(ctx, other, l.ID), ErrNotServiceOwner)

	cid := int64(3)
	price := ""
	updated, err := cat.UpdateService(ctx, owner, l.ID, &UpdateServiceRequest{CategoryID: &cid, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Pintura", updated.CategoryName)
	assert.Equal(t, DefaultPrice, updated.Price)

	require.NoError(t, cat.DeleteService(ctx, owner, l.ID))
	_, err = cat.GetService(ctx, l.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	var links int64
	require.NoError(t, db.Model(&WorkerService{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestListingQueries(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	worker := newPerson(t, db, "Luis", "luis@example.cl", true)
	require.NoError(t, db.Create(&[]Category{{ID: 1, Name: "General"}, {ID: 3, Name: "Pintura"}, {ID: 4, Name: "Electricista"}}).Error)
	cat := New(NewRepository(db), allowAll())

	paint := int64(3)
	elec := int64(4)
	facade, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "Pintura de fachadas", CategoryID: &paint})
	require.NoError(t, err)
	_, err = cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "Pintura interior", CategoryID: &paint})
	require.NoError(t, err)
	hidden, err := cat.CreateService(ctx, worker, &CreateServiceRequest{Title: "Tableros", Description: "Cambio de TABLERO", CategoryID: &elec})
	require.NoError(t, err)
	orphan := Service{Title: "Sin dueño", Price: DefaultPrice, State: StateActive}
	require.NoError(t, db.Create(&orphan).Error)

	off := StateInactive
	_, err = cat.UpdateService(ctx, worker, hidden.ID, &UpdateServiceRequest{State: &off})
	require.NoError(t, err)

	cats, err := cat.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	counts := map[string]int64{}
	for _, c := range cats {
		counts[c.Name] = c.ServiceCount
	}
	assert.Equal(t, map[string]int64{"General": 0, "Pintura": 2, "Electricista": 0}, counts)

	featured, err := cat.FeaturedCategories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Pintura", featured[0].Name)

	all, err := cat.ListServices(ctx, ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Sin dueño", all[0].Title)
	assert.Equal(t, UnassignedWorker, all[0].WorkerName)

	found, err := cat.ListServices(ctx, ServiceFilter{Query: "PINTURA", CategoryID: paint, Limit: 1})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pintura interior", found[0].Title)

	found, err = cat.ListServices(ctx, ServiceFilter{Query: "tablero"})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = cat.LookupOwner(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	_, err = cat.LookupOwner(ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrServiceUnowned)
	owner, err := cat.LookupOwner(ctx, facade.ID)
	require.NoError(t, err)
	assert.Equal(t, worker, owner.WorkerID)
	assert.Equal(t, "Pintura de fachadas", owner.ServiceTitle)
}
