package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/opencode-ai/lic/internal/clock"
	"github.com/opencode-ai/lic/internal/config"
	"github.com/opencode-ai/lic/internal/licenses"
	"github.com/opencode-ai/lic/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	name  string
	email string
}

func (f fakeIdentity) UserName(context.Context) (string, error) {
	if f.name == "" {
		return "", errors.New("user.name not set")
	}
	return f.name, nil
}

func (f fakeIdentity) UserEmail(context.Context) (string, error) {
	return f.email, nil
}

// testEnv points every external collaborator at test doubles and returns
// the project directory.
func testEnv(t *testing.T, identity fakeIdentity) string {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	project := filepath.Join(t.TempDir(), "widget")
	require.NoError(t, os.MkdirAll(project, 0o755))

	origClock, origIdentity, origWizard := clockFunc, identityFunc, wizardFunc
	origInteractive, origWD := interactiveFunc, workingDirFunc
	t.Cleanup(func() {
		clockFunc, identityFunc, wizardFunc = origClock, origIdentity, origWizard
		interactiveFunc, workingDirFunc = origInteractive, origWD
	})

	fixed := clock.NewFake(time.Date(2027, time.June, 1, 12, 0, 0, 0, time.UTC))
	clockFunc = func() clock.Clock { return fixed }
	identityFunc = func(string) licenses.IdentitySource { return identity }
	wizardFunc = func(tui.Options) (tui.Result, error) {
		t.Fatalf("wizard should not run")
		return tui.Result{}, nil
	}
	interactiveFunc = func() bool { return false }
	workingDirFunc = func() (string, error) { return project, nil }

	return project
}

func readLicense(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateMIT(t *testing.T) {
	project := testEnv(t, fakeIdentity{})

	result, err := generate(context.Background(), nil, generateOptions{
		LicenseID: "mit",
		Author:    "Jane Doe",
		Year:      "2024",
	})
	require.NoError(t, err)

	assert.Equal(t, "mit", result.License)
	assert.Equal(t, "MIT License", result.Name)
	assert.Equal(t, "LICENSE", result.Path)

	text := readLicense(t, filepath.Join(project, "LICENSE"))
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "2024")
	assert.NotContains(t, text, "[year]")
	assert.NotContains(t, text, "[fullname]")
	assert.Equal(t, len(text), result.Bytes)
}

func TestGenerateDefaultsToMITAndGitAuthor(t *testing.T) {
	project := testEnv(t, fakeIdentity{name: "Git User"})

	result, err := generate(context.Background(), config.DefaultConfig(), generateOptions{})
	require.NoError(t, err)

	assert.Equal(t, "mit", result.License)
	assert.Equal(t, "Git User", result.Author)
	assert.Equal(t, "2027", result.Year, "year should come from the injected clock")
	assert.Contains(t, readLicense(t, filepath.Join(project, "LICENSE")), "Copyright (c) 2027 Git User")
}

func TestGenerateCaseInsensitiveLicense(t *testing.T) {
	project := testEnv(t, fakeIdentity{})

	_, err := generate(context.Background(), nil, generateOptions{LicenseID: "Apache-2.0", Author: "Jane Doe", Year: "2024"})
	require.NoError(t, err)

	text := readLicense(t, filepath.Join(project, "LICENSE"))
	assert.Contains(t, text, "Copyright 2024 Jane Doe")
	assert.NotContains(t, text, "[yyyy]")
}

func TestGenerateUnknownLicenseWritesNothing(t *testing.T) {
	project := testEnv(t, fakeIdentity{name: "Git User"})

	_, err := generate(context.Background(), nil, generateOptions{LicenseID: "not-a-license"})
	require.Error(t, err)
	assert.ErrorIs(t, err, licenses.ErrUnknownLicense)
	assert.Contains(t, err.Error(), "apache-2.0")

	_, statErr := os.Stat(filepath.Join(project, "LICENSE"))
	assert.True(t, os.IsNotExist(statErr), "no file should be written")
}

func TestGenerateAuthorRequired(t *testing.T) {
	project := testEnv(t, fakeIdentity{})

	_, err := generate(context.Background(), nil, generateOptions{LicenseID: "mit"})
	assert.ErrorIs(t, err, ErrAuthorRequired)
	_, statErr := os.Stat(filepath.Join(project, "LICENSE"))
	assert.True(t, os.IsNotExist(statErr))

	// licenses without an author placeholder need no author
	result, err := generate(context.Background(), nil, generateOptions{LicenseID: "unlicense"})
	require.NoError(t, err)
	assert.Equal(t, "unlicense", result.License)
}

func TestGenerateConfigDefaults(t *testing.T) {
	project := testEnv(t, fakeIdentity{name: "Git User"})

	cfg := config.DefaultConfig()
	cfg.Defaults.License = "bsd-3-clause"
	cfg.Defaults.Author = "Config Author"
	cfg.Defaults.Output = "COPYING"

	result, err := generate(context.Background(), cfg, generateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "bsd-3-clause", result.License)
	assert.Equal(t, "Config Author", result.Author)
	assert.Contains(t, readLicense(t, filepath.Join(project, "COPYING")), "Copyright (c) 2027, Config Author")

	result, err = generate(context.Background(), cfg, generateOptions{LicenseID: "isc", Author: "Flag Author"})
	require.NoError(t, err)
	assert.Equal(t, "isc", result.License)
	assert.Equal(t, "Flag Author", result.Author, "flags override config")
}

func TestGenerateStdoutWritesNoFile(t *testing.T) {
	project := testEnv(t, fakeIdentity{})

	result, err := generate(context.Background(), nil, generateOptions{LicenseID: "gpl-3.0", Author: "Jane Doe", Stdout: true})
	require.NoError(t, err)

	assert.Empty(t, result.Path)
	assert.Contains(t, result.Text, "Copyright (C) 2027  Jane Doe")
	assert.Contains(t, result.Text, "widget  Copyright (C) 2027  Jane Doe", "project defaults to the directory name")

	_, statErr := os.Stat(filepath.Join(project, "LICENSE"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateWriteFailure(t *testing.T) {
	testEnv(t, fakeIdentity{})

	_, err := generate(context.Background(), nil, generateOptions{
		LicenseID: "mit",
		Author:    "Jane Doe",
		Output:    filepath.Join("missing-dir", "LICENSE"),
	})
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr), "expected *WriteError, got %T", err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}

func TestGenerateStrictMode(t *testing.T) {
	project := testEnv(t, fakeIdentity{})

	dir := filepath.Join(project, ".lic", "licenses")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	custom := "id: internal\nname: Internal\nbody: \"Copyright {{year}} {{author}} for {{client}}\\n\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "internal.yaml"), []byte(custom), 0o644))

	_, err := generate(context.Background(), nil, generateOptions{LicenseID: "internal", Author: "Jane Doe", Strict: true})
	assert.ErrorIs(t, err, licenses.ErrUnresolvedPlaceholder)
	_, statErr := os.Stat(filepath.Join(project, "LICENSE"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = generate(context.Background(), nil, generateOptions{LicenseID: "internal", Author: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, "Copyright 2027 Jane Doe for {{client}}\n", readLicense(t, filepath.Join(project, "LICENSE")))
}

func TestGenerateInteractiveRequiresTTY(t *testing.T) {
	testEnv(t, fakeIdentity{})

	_, err := generate(context.Background(), nil, generateOptions{Interactive: true})
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight), "expected *PreflightError, got %v", err)
	assert.Contains(t, preflight.Error(), "Hint:")
}

func TestGenerateInteractiveUsesWizardAnswers(t *testing.T) {
	project := testEnv(t, fakeIdentity{name: "Git User"})
	interactiveFunc = func() bool { return true }

	var seen tui.Options
	wizardFunc = func(opts tui.Options) (tui.Result, error) {
		seen = opts
		return tui.Result{LicenseID: "apache-2.0", Author: "Picked Author", Year: "2020"}, nil
	}

	result, err := generate(context.Background(), nil, generateOptions{Interactive: true})
	require.NoError(t, err)

	assert.False(t, seen.SkipLicense)
	assert.False(t, seen.SkipAuthor)
	assert.False(t, seen.SkipYear)
	assert.Equal(t, "mit", seen.LicenseID, "default license should be preselected")
	assert.Equal(t, "Git User", seen.Author)
	assert.Equal(t, strconv.Itoa(2027), seen.Year)
	assert.NotEmpty(t, seen.Licenses)

	assert.Equal(t, "apache-2.0", result.License)
	assert.Contains(t, readLicense(t, filepath.Join(project, "LICENSE")), "Copyright 2020 Picked Author")
}

func TestGenerateInteractiveSkipsGivenFlags(t *testing.T) {
	testEnv(t, fakeIdentity{})
	interactiveFunc = func() bool { return true }

	var seen tui.Options
	wizardFunc = func(opts tui.Options) (tui.Result, error) {
		seen = opts
		return tui.Result{LicenseID: opts.LicenseID, Author: opts.Author, Year: opts.Year}, nil
	}

	_, err := generate(context.Background(), nil, generateOptions{Interactive: true, LicenseID: "ISC", Author: "Jane Doe"})
	require.NoError(t, err)
	assert.True(t, seen.SkipLicense)
	assert.True(t, seen.SkipAuthor)
	assert.False(t, seen.SkipYear)
	assert.Equal(t, "ISC", seen.LicenseID)

	_, err = generate(context.Background(), nil, generateOptions{Interactive: true, LicenseID: "nope"})
	assert.ErrorIs(t, err, licenses.ErrUnknownLicense, "explicit license is checked before prompting")
}

func TestGenerateInteractivePlaceholderAuthor(t *testing.T) {
	testEnv(t, fakeIdentity{})
	interactiveFunc = func() bool { return true }

	wizardFunc = func(opts tui.Options) (tui.Result, error) {
		assert.Equal(t, placeholderAuthor, opts.Author)
		return tui.Result{}, tui.ErrCancelled
	}

	_, err := generate(context.Background(), nil, generateOptions{Interactive: true})
	assert.ErrorIs(t, err, tui.ErrCancelled)
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.License = ""
	cfg.Defaults.Output = ""
	cfg.Render.Strict = true

	opts := applyConfigDefaults(generateOptions{}, cfg, "/work/widget")
	assert.Equal(t, "mit", opts.LicenseID)
	assert.Equal(t, "LICENSE", opts.Output)
	assert.Equal(t, "widget", opts.Project)
	assert.True(t, opts.Strict)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", " b ", "c"))
	assert.Equal(t, "", firstNonEmpty())
	assert.False(t, strings.Contains(firstNonEmpty(" x "), " "))
}

type countingIdentity struct {
	nameCalls  int
	emailCalls int
}

func (c *countingIdentity) UserName(context.Context) (string, error) {
	c.nameCalls++
	return "", errors.New("user.name not set")
}

func (c *countingIdentity) UserEmail(context.Context) (string, error) {
	c.emailCalls++
	return "", errors.New("user.email not set")
}

func TestGenerateQueriesGitOnce(t *testing.T) {
	testEnv(t, fakeIdentity{})
	identity := &countingIdentity{}
	identityFunc = func(string) licenses.IdentitySource { return identity }

	_, err := generate(context.Background(), nil, generateOptions{LicenseID: "unlicense", Stdout: true})
	require.NoError(t, err)
	assert.Equal(t, 1, identity.nameCalls)
	assert.Equal(t, 1, identity.emailCalls)
}
