package sessions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimline/internal/sessions/domain"
	"github.com/zjrosen/vimline/internal/testutil"
	"github.com/zjrosen/vimline/internal/vim"
)

func TestService_OpenExisting(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.NewBuilder(t, repo).WithSession("work").Build()

	sess, created, err := NewService(repo).Open("work")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "guid-work", sess.GUID())
	require.NotZero(t, sess.ID())
}

func TestService_OpenNew(t *testing.T) {
	svc := NewService(testutil.NewTestRepo(t), WithGUIDFunc(func() string { return "fixed" }))

	sess, created, err := svc.Open("  fresh ")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "fresh", sess.Name())
	require.Equal(t, "fixed", sess.GUID())
	require.Zero(t, sess.ID())
}

func TestService_OpenGeneratesUUID(t *testing.T) {
	svc := NewService(testutil.NewTestRepo(t))
	a, _, err := svc.Open("a")
	require.NoError(t, err)
	b, _, err := svc.Open("b")
	require.NoError(t, err)
	require.Len(t, a.GUID(), 36)
	require.NotEqual(t, a.GUID(), b.GUID())
}

func TestService_OpenEmptyName(t *testing.T) {
	_, _, err := NewService(testutil.NewTestRepo(t)).Open(" ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestService_OpenDeletedStartsOver(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.NewBuilder(t, repo).WithStandardSessions().Build()

	_, created, err := NewService(repo).Open("old")
	require.NoError(t, err)
	require.True(t, created)
}

func TestService_LoadRestoresState(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.NewBuilder(t, repo).
		WithSession("work",
			testutil.Register('a', "alpha"),
			testutil.Mark('m', 1, 2),
			testutil.LastSearch('x', true, false),
			testutil.Lines("one", "two")).
		Build()

	st := vim.NewSessionState()
	sess, lines, err := NewService(repo).Load("work", st)
	require.NoError(t, err)
	require.Equal(t, "work", sess.Name())
	require.Equal(t, []string{"one", "two"}, lines)

	reg, ok := st.Registers().Get('a')
	require.True(t, ok)
	require.Equal(t, "alpha", reg.Text)
	mark, ok := st.Mark('m')
	require.True(t, ok)
	require.Equal(t, vim.Position{Line: 1, Col: 2}, mark)
	search, ok := st.LastSearch()
	require.True(t, ok)
	require.Equal(t, vim.CharSearch{Char: 'x', Forward: true}, search)
}

func TestService_LoadNew(t *testing.T) {
	st := vim.NewSessionState()
	sess, lines, err := NewService(testutil.NewTestRepo(t)).Load("new", st)
	require.NoError(t, err)
	require.Nil(t, lines)
	require.Equal(t, "new", sess.Name())
	require.Empty(t, st.Registers().All())
}

func TestService_SaveRoundTrip(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	svc := NewService(repo)

	st := vim.NewSessionState()
	sess, _, err := svc.Load("work", st)
	require.NoError(t, err)

	engine := vim.NewEngine()
	lines := []string{"hello world"}
	cmd, status := vim.Parse(st, `"ayw`)
	require.Equal(t, vim.StatusComplete, status)
	res, ok := engine.Execute(t.Context(), st, lines, cmd)
	require.True(t, ok)
	st.SetMark('k', vim.Position{Col: 6})

	require.NoError(t, svc.Save(sess, st, res.Lines))
	require.NotZero(t, sess.ID())

	restored := vim.NewSessionState()
	_, got, err := svc.Load("work", restored)
	require.NoError(t, err)
	require.Equal(t, []string{"hello world"}, got)
	reg, ok := restored.Registers().Get('a')
	require.True(t, ok)
	require.Equal(t, "hello ", reg.Text)
	mark, ok := restored.Mark('k')
	require.True(t, ok)
	require.Equal(t, vim.Position{Col: 6}, mark)
}

func TestService_SaveDuplicateName(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.NewBuilder(t, repo).WithSession("work").Build()

	dup := domain.NewSession("other-guid", "work")
	err := NewService(repo).Save(dup, vim.NewSessionState(), nil)
	var exists *domain.SessionExistsError
	require.True(t, errors.As(err, &exists))
	require.Contains(t, err.Error(), `saving session "work"`)
}

func TestService_ListAndDelete(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.NewBuilder(t, repo).WithStandardSessions().Build()
	svc := NewService(repo)

	list, err := svc.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	require.NoError(t, svc.Delete("work"))
	list, err = svc.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "notes", list[0].Name())
}

func TestService_DeleteMissing(t *testing.T) {
	err := NewService(testutil.NewTestRepo(t)).Delete("ghost")
	var notFound *domain.SessionNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "ghost", notFound.Name)
}

func TestService_DeleteEmptyName(t *testing.T) {
	require.ErrorIs(t, NewService(testutil.NewTestRepo(t)).Delete(""), ErrEmptyName)
}

type failingRepo struct {
	domain.SessionRepository
}

func (failingRepo) FindByName(string) (*domain.Session, error) {
	return nil, errors.New("database is locked")
}

func TestService_OpenPropagatesErrors(t *testing.T) {
	_, _, err := NewService(failingRepo{}).Open("work")
	require.Error(t, err)
	require.Contains(t, err.Error(), "database is locked")
	var notFound *domain.SessionNotFoundError
	require.False(t, errors.As(err, &notFound))
}
