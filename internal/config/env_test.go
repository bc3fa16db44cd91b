package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/quizpilot/internal/utils"
)

func TestReadEnv_FileAndProcess(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "quiz.env")
	writeFile(t, dir, "quiz.env", `
QUIZPILOT_EMAIL=file@example.com
QUIZPILOT_PASSWORD=from-file
QUIZPILOT_PRACTICE=true
QUIZPILOT_RESPONSE_WAIT=40
UNRELATED=ignored
`)

	env, err := ReadEnv(envFile, []string{
		"QUIZPILOT_EMAIL=process@example.com",
		"QUIZPILOT_QUIZ=Go (Programming Language)",
		"PATH=/usr/bin",
	})
	require.NoError(t, err)

	assert.Equal(t, "process@example.com", env.Email)
	assert.Equal(t, "from-file", env.Password)
	assert.Equal(t, "Go (Programming Language)", env.Quiz)
	require.NotNil(t, env.Practice)
	assert.True(t, *env.Practice)
	assert.Equal(t, 40, env.ResponseWait)
}

func TestReadEnv_MissingDefaultFileIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	env, err := ReadEnv(DefaultEnvFile, nil)
	require.NoError(t, err)
	assert.Equal(t, EnvOverrides{}, env)
}

func TestReadEnv_MissingExplicitFileErrors(t *testing.T) {
	_, err := ReadEnv(filepath.Join(t.TempDir(), "custom.env"), nil)
	require.Error(t, err)
}

func TestReadEnv_BadValue(t *testing.T) {
	_, err := ReadEnv("", []string{"QUIZPILOT_RESPONSE_WAIT=soon"})
	require.ErrorContains(t, err, "QUIZPILOT_RESPONSE_WAIT")
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	cfg.Quiz.Names = []string{"Python"}

	cfg.ApplyEnv(EnvOverrides{
		Email:        "me@example.com",
		Password:     "pw",
		Quiz:         "Go",
		Practice:     utils.Ptr(true),
		ResponseWait: 12,
	})

	assert.Equal(t, "me@example.com", cfg.Credentials.Email)
	assert.Equal(t, "pw", cfg.Credentials.Password)
	assert.Equal(t, []string{"Go"}, cfg.Quiz.Names)
	assert.True(t, cfg.IsPractice())
	assert.Equal(t, 12*time.Second, cfg.Timing.ResponseWait)

	cfg.ApplyEnv(EnvOverrides{})
	assert.Equal(t, []string{"Go"}, cfg.Quiz.Names)
}
