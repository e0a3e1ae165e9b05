package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitrack/internal/cli"
	"bmitrack/internal/models"
	"bmitrack/internal/service"
)

type fakeRepo struct {
	recs []models.BMIRecord
	fail bool
}

func (f *fakeRepo) Create(rec *models.BMIRecord) error {
	if f.fail {
		return assert.AnError
	}
	rec.ID = uint(len(f.recs) + 1)
	f.recs = append(f.recs, *rec)
	return nil
}

func (f *fakeRepo) HistoryByUsername(username string) ([]models.BMIRecord, error) {
	var out []models.BMIRecord
	for i := len(f.recs) - 1; i >= 0; i-- {
		if f.recs[i].Username == username {
			out = append(out, f.recs[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) DistinctUsernames() ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, rec := range f.recs {
		if !seen[rec.Username] {
			seen[rec.Username] = true
			names = append(names, rec.Username)
		}
	}
	return names, nil
}

func (f *fakeRepo) CountByUsername(username string) (int64, error) {
	var n int64
	for _, rec := range f.recs {
		if rec.Username == username {
			n++
		}
	}
	return n, nil
}

func runSession(t *testing.T, repo *fakeRepo, input string) string {
	t.Helper()
	svc := service.NewRecordService(repo)
	var out strings.Builder
	loop := cli.New(svc, strings.NewReader(input), &out)
	require.NoError(t, loop.Run())
	return out.String()
}

func TestRunComputesWithoutSaving(t *testing.T) {
	repo := &fakeRepo{}
	out := runSession(t, repo, "\n70\n1.75\nn\n")

	assert.Contains(t, out, "BMI: 22.86")
	assert.Contains(t, out, "Category: Normal weight")
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "Saved:")
	assert.Empty(t, repo.recs)
}

func TestRunSavesWhenUsernameGiven(t *testing.T) {
	repo := &fakeRepo{}
	out := runSession(t, repo, "alice\n70\n1.75\nn\n")

	assert.Contains(t, out, "Saved: yes")
	require.Len(t, repo.recs, 1)
	assert.Equal(t, "alice", repo.recs[0].Username)
	assert.Equal(t, 22.86, repo.recs[0].BMI)
}

func TestRunReportsFailedSave(t *testing.T) {
	repo := &fakeRepo{fail: true}
	out := runSession(t, repo, "alice\n70\n1.75\nn\n")

	assert.Contains(t, out, "BMI: 22.86")
	assert.Contains(t, out, "Saved: no")
}

func TestRunRepromptsOnInvalidNumber(t *testing.T) {
	repo := &fakeRepo{}
	out := runSession(t, repo, "\nabc\n70\n1.75\nn\n")

	assert.Contains(t, out, "Error: please enter valid numbers.")
	assert.Contains(t, out, "BMI: 22.86")
}

func TestRunReportsValidationError(t *testing.T) {
	repo := &fakeRepo{}
	out := runSession(t, repo, "\n0\n1.75\nn\n")

	assert.Contains(t, out, "Error: weight and height must be positive numbers.")
	assert.NotContains(t, out, "--- Results ---")
}

func TestRunLoopsUntilDeclined(t *testing.T) {
	repo := &fakeRepo{}
	out := runSession(t, repo, "\n70\n1.75\ny\n50\n1.8\nn\n")

	assert.Contains(t, out, "BMI: 22.86")
	assert.Contains(t, out, "BMI: 15.43")
	assert.Contains(t, out, "Category: Underweight")
	assert.Equal(t, 1, strings.Count(out, "Goodbye!"))
}

func TestRunPresetUsernameSkipsPrompt(t *testing.T) {
	repo := &fakeRepo{}
	svc := service.NewRecordService(repo)
	var out strings.Builder
	loop := cli.New(svc, strings.NewReader("70\n1.75\nn\n"), &out)
	loop.SetUsername("bob")
	require.NoError(t, loop.Run())

	assert.NotContains(t, out.String(), "Enter your username")
	require.Len(t, repo.recs, 1)
	assert.Equal(t, "bob", repo.recs[0].Username)
}

func TestRunEndsCleanlyOnEOF(t *testing.T) {
	repo := &fakeRepo{}
	svc := service.NewRecordService(repo)
	var out strings.Builder
	loop := cli.New(svc, strings.NewReader("\n70\n"), &out)
	require.NoError(t, loop.Run())

	assert.NotContains(t, out.String(), "Goodbye!")
}
