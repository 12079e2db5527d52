package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/chat"
	"skilllink/internal/domain/profile"
	"skilllink/internal/domain/request"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/testutil"
)

type openGate struct{}

func (openGate) CheckPublish(context.Context, *gorm.DB, int64) error { return nil }

type market struct {
	db       *gorm.DB
	ratings  *Service
	requests *request.Engine
	people   profile.Repository
	chat     *chat.Service
	client   int64
	worker   int64
	service  int64
}

func newMarket(t *testing.T) *market {
	t.Helper()
	models := append(profile.Models(), catalog.Models()...)
	models = append(models, request.Models()...)
	models = append(models, chat.Models()...)
	models = append(models, Models()...)
	db := testutil.DB(t, models...)
	ctx := context.Background()

	people := profile.NewRepository(db)
	client := &profile.Person{FirstName: "Carla", LastName: "Cliente", Email: "carla@example.cl"}
	worker := &profile.Person{FirstName: "Walter", LastName: "Worker", Email: "walter@example.cl"}
	require.NoError(t, people.CreateAccount(ctx, client, false))
	require.NoError(t, people.CreateAccount(ctx, worker, true))

	cat := catalog.New(catalog.NewRepository(db), openGate{})
	svc, err := cat.CreateService(ctx, worker.ID, &catalog.CreateServiceRequest{Title: "Pintura"})
	require.NoError(t, err)

	requestRepo := request.NewRepository(db)
	return &market{
		db:       db,
		ratings:  NewService(NewRepository(db)),
		requests: request.NewEngine(requestRepo, cat),
		people:   people,
		chat:     chat.NewService(chat.NewRepository(db), requestRepo, nil),
		client:   client.ID,
		worker:   worker.ID,
		service:  svc.ID,
	}
}

func (m *market) open(t *testing.T) int64 {
	t.Helper()
	sr, err := m.requests.CreateRequest(context.Background(), m.client, &request.CreateRequestInput{
		ServiceID: m.service,
		Message:   "Pintar el living",
	})
	require.NoError(t, err)
	return sr.ID
}

func (m *market) state(t *testing.T, requestID int64) request.State {
	t.Helper()
	var sr request.ServiceRequest
	require.NoError(t, m.db.First(&sr, requestID).Error)
	return sr.State
}

func TestAggregateFollowsEveryRating(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	steps := []struct {
		score   int
		average float64
		count   int64
	}{
		{5, 5.00, 1},
		{3, 4.00, 2},
		{4, 4.00, 3},
		{2, 3.50, 4},
	}
	for _, step := range steps {
		res, err := m.ratings.RateAndFinalize(ctx, m.client, m.open(t), step.score, "")
		require.NoError(t, err)
		assert.Equal(t, step.average, res.Worker.AverageRating)
		assert.Equal(t, step.count, res.Worker.RatingCount)
	}

	w, err := m.people.GetWorker(ctx, m.worker)
	require.NoError(t, err)
	assert.InDelta(t, 3.50, w.AverageRating, 0.001)
	assert.EqualValues(t, 4, w.RatingCount)
}

func TestAverageRoundsToTwoDecimals(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	for _, score := range []int{5, 4, 4} {
		_, err := m.ratings.RateAndFinalize(ctx, m.client, m.open(t), score, "")
		require.NoError(t, err)
	}
	w, err := m.people.GetWorker(ctx, m.worker)
	require.NoError(t, err)
	assert.InDelta(t, 4.33, w.AverageRating, 0.0001)
}

func TestRateFromAcceptedFinalizes(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	id := m.open(t)
	_, err := m.requests.AcceptRequest(ctx, m.worker, id)
	require.NoError(t, err)

	res, err := m.ratings.RateAndFinalize(ctx, m.client, id, 4, "  muy prolijo ")
	require.NoError(t, err)
	assert.Equal(t, "muy prolijo", res.Rating.Comment)
	assert.Equal(t, request.StateCompleted, m.state(t, id))
}

func TestRateRejections(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	id := m.open(t)

	for _, score := range []int{0, -1, 6} {
		_, err := m.ratings.RateAndFinalize(ctx, m.client, id, score, "")
		assert.ErrorIs(t, err, ErrInvalidScore, "score %d", score)
	}

	_, err := m.ratings.RateAndFinalize(ctx, m.worker, id, 5, "")
	assert.ErrorIs(t, err, request.ErrNotClient)
	assert.True(t, errs.Is(err, errs.KindAuthorization))

	_, err = m.ratings.RateAndFinalize(ctx, m.client, 9999, 5, "")
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	assert.Equal(t, request.StatePending, m.state(t, id))

	_, err = m.ratings.RateAndFinalize(ctx, m.client, id, 5, "")
	require.NoError(t, err)
	_, err = m.ratings.RateAndFinalize(ctx, m.client, id, 4, "")
	assert.ErrorIs(t, err, ErrNotRateable)
	assert.True(t, errs.Is(err, errs.KindConflict))
}

func TestClosedRequestsCannotBeRated(t *testing.T) {
	ctx := context.Background()

	for _, closed := range []request.State{request.StateRejected, request.StateCancelled} {
		m := newMarket(t)
		id := m.open(t)
		require.NoError(t, m.db.Model(&request.ServiceRequest{}).Where("id = ?", id).Update("state", closed).Error)

		_, err := m.ratings.RateAndFinalize(ctx, m.client, id, 5, "")
		assert.ErrorIs(t, err, ErrNotRateable, "from %s", closed)
		assert.Equal(t, closed, m.state(t, id))

		var n int64
		require.NoError(t, m.db.Model(&Rating{}).Count(&n).Error)
		assert.Zero(t, n)
	}
}

func TestRequestToRatingScenario(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	id := m.open(t)
	for i, from := range []int64{m.client, m.worker, m.client, m.worker} {
		_, err := m.chat.SendMessage(ctx, id, from, []string{"hola", "buenas", "¿martes?", "listo"}[i])
		require.NoError(t, err)
	}

	res, err := m.ratings.RateAndFinalize(ctx, m.client, id, 5, "Excelente")
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Worker.AverageRating)
	assert.EqualValues(t, 1, res.Worker.RatingCount)
	assert.Equal(t, request.StateCompleted, m.state(t, id))

	thread, err := m.chat.ListMessages(ctx, m.worker, id)
	require.NoError(t, err)
	assert.Len(t, thread.Messages, 4)

	list, err := m.ratings.ListWorkerRatings(ctx, m.worker, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Carla Cliente", list[0].ClientName)
	assert.Equal(t, "Pintura", list[0].ServiceTitle)
	assert.Equal(t, "Excelente", list[0].Comment)

	again, err := m.requests.HasClientRequestedService(ctx, m.client, m.service)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestListWorkerRatingsNewestFirst(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	for _, score := range []int{1, 2, 3} {
		_, err := m.ratings.RateAndFinalize(ctx, m.client, m.open(t), score, "")
		require.NoError(t, err)
	}
	list, err := m.ratings.ListWorkerRatings(ctx, m.worker, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Score)
	assert.Equal(t, 2, list[1].Score)

	empty, err := m.ratings.ListWorkerRatings(ctx, 12345, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExistingRatingBlocksPendingRequest(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	id := m.open(t)
	require.NoError(t, m.db.Create(&Rating{RequestID: id, Score: 3}).Error)

	_, err := m.ratings.RateAndFinalize(ctx, m.client, id, 5, "")
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.True(t, errs.Is(err, errs.KindConflict))
	assert.Equal(t, request.StatePending, m.state(t, id))

	w, err := m.people.GetWorker(ctx, m.worker)
	require.NoError(t, err)
	assert.Zero(t, w.RatingCount)
}

func TestCreateMapsDuplicateToAlreadyRated(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()
	id := m.open(t)
	repo := NewRepository(m.db)

	require.NoError(t, repo.Create(ctx, &Rating{RequestID: id, Score: 4}))
	err := repo.Create(ctx, &Rating{RequestID: id, Score: 2})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	var n int64
	require.NoError(t, m.db.Model(&Rating{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRateWithCancelledContext(t *testing.T) {
	m := newMarket(t)
	id := m.open(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ratings.RateAndFinalize(ctx, m.client, id, 5, "excelente")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)

	var n int64
	require.NoError(t, m.db.Model(&Rating{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, request.StatePending, m.state(t, id))
}
