package movies

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinebook/internal/shared/apperrors"
)

type fakeMovieRepo struct {
	movies     map[uuid.UUID]*Movie
	screenings map[uuid.UUID][]ScreeningSlot
	updates    map[string]interface{}
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{
		movies:     make(map[uuid.UUID]*Movie),
		screenings: make(map[uuid.UUID][]ScreeningSlot),
	}
}

func (f *fakeMovieRepo) Create(movie *Movie) error {
	movie.ID = uuid.New()
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) GetByID(id uuid.UUID) (*Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return movie, nil
}

func (f *fakeMovieRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.updates = updates
	if name, ok := updates["name"].(string); ok {
		movie.Name = name
	}
	return movie, nil
}

func (f *fakeMovieRepo) GetAll() ([]Movie, error) {
	var all []Movie
	for _, movie := range f.movies {
		all = append(all, *movie)
	}
	return all, nil
}

func (f *fakeMovieRepo) GetWithUpcomingScreenings(today time.Time, currentHour int) ([]Movie, error) {
	var visible []Movie
	for id, movie := range f.movies {
		if len(f.upcoming(id, today, currentHour)) > 0 {
			visible = append(visible, *movie)
		}
	}
	return visible, nil
}

func (f *fakeMovieRepo) GetUpcomingScreenings(movieID uuid.UUID, today time.Time, currentHour int) ([]ScreeningSlot, error) {
	return f.upcoming(movieID, today, currentHour), nil
}

// upcoming mirrors the repository's visibility predicate: strictly future
// dates, or today with a start hour still ahead.
func (f *fakeMovieRepo) upcoming(movieID uuid.UUID, today time.Time, currentHour int) []ScreeningSlot {
	var out []ScreeningSlot
	for _, s := range f.screenings[movieID] {
		if s.Date.After(today) || (s.Date.Equal(today) && s.SlotHour > currentHour) {
			out = append(out, s)
		}
	}
	return out
}

func seedMovie(repo *fakeMovieRepo) *Movie {
	movie := &Movie{
		Name:       "Interstellar",
		Duration:   2.49,
		Languages:  []string{"English"},
		MovieTypes: []string{"2D"},
	}
	_ = repo.Create(movie)
	return movie
}

func TestGetMovie_AdminSeesMovieWithoutScreenings(t *testing.T) {
	repo := newFakeMovieRepo()
	movie := seedMovie(repo)
	service := NewService(repo)

	resp, err := service.GetMovie(movie.ID, true)

	require.NoError(t, err)
	assert.Equal(t, movie.ID.String(), resp.ID)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestGetMovie_UserNeedsUpcomingScreening(t *testing.T) {
	repo := newFakeMovieRepo()
	movie := seedMovie(repo)
	service := NewService(repo)

	t.Run("no screenings looks like not found", func(t *testing.T) {
		_, err := service.GetMovie(movie.ID, false)

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.CodeOf(err))
	})

	t.Run("past screening does not count", func(t *testing.T) {
		yesterday := time.Now().AddDate(0, 0, -1)
		repo.screenings[movie.ID] = []ScreeningSlot{
			{ID: uuid.New(), Date: time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location()), SlotHour: 18},
		}

		_, err := service.GetMovie(movie.ID, false)

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.CodeOf(err))
	})

	t.Run("future screening makes it visible", func(t *testing.T) {
		tomorrow := time.Now().AddDate(0, 0, 1)
		repo.screenings[movie.ID] = []ScreeningSlot{
			{ID: uuid.New(), Date: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location()), SlotHour: 9},
		}

		resp, err := service.GetMovie(movie.ID, false)

		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
	})
}

func TestListMovies_VisibilitySplit(t *testing.T) {
	repo := newFakeMovieRepo()
	withScreening := seedMovie(repo)
	seedMovie(repo) // no screenings

	tomorrow := time.Now().AddDate(0, 0, 1)
	repo.screenings[withScreening.ID] = []ScreeningSlot{
		{ID: uuid.New(), Date: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location()), SlotHour: 12},
	}

	service := NewService(repo)

	adminList, err := service.ListMovies(true)
	require.NoError(t, err)
	assert.Len(t, adminList, 2)

	userList, err := service.ListMovies(false)
	require.NoError(t, err)
	require.Len(t, userList, 1)
	assert.Equal(t, withScreening.ID.String(), userList[0].ID)
}

func TestUpdateMovie(t *testing.T) {
	repo := newFakeMovieRepo()
	movie := seedMovie(repo)
	service := NewService(repo)

	name := "Interstellar (Remastered)"
	resp, err := service.UpdateMovie(movie.ID, UpdateMovieRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)

	_, err = service.UpdateMovie(uuid.New(), UpdateMovieRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.CodeOf(err))
}

func TestMovieMembershipHelpers(t *testing.T) {
	movie := Movie{
		Languages:  []string{"English", "Hindi"},
		MovieTypes: []string{"2D", "IMAX"},
	}

	assert.True(t, movie.HasLanguage("Hindi"))
	assert.False(t, movie.HasLanguage("French"))
	assert.True(t, movie.HasType("IMAX"))
	assert.False(t, movie.HasType("4DX"))
}
