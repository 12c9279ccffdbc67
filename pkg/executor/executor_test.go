package executor_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/executor"
	"github.com/mp3curate/mp3curate/pkg/testutil"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nfd = testutil.NFD("café.mp3")
	nfc = testutil.NFC("café.mp3")
)

func applyPlan(source, target string) types.RenamePlan {
	return types.RenamePlan{
		Entry:       types.Entry{Path: source, RawName: filepath.Base(source), Kind: types.KindFile, Depth: 1},
		Source:      source,
		Target:      target,
		Disposition: types.DispositionApply,
	}
}

func quarantinePlan(source, target, quarantineTarget string) types.RenamePlan {
	plan := applyPlan(source, target)
	plan.Disposition = types.DispositionConflict
	plan.Reason = "canonical name already exists"
	plan.Quarantine = &types.QuarantineAction{Source: source, Target: quarantineTarget}
	return plan
}

func TestExecute_DryRunNeverMutates(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(nfd, "x")
	exec := executor.New(executor.Options{FS: tree.FS, QuarantineRoot: "/q"})

	out := exec.Execute(applyPlan("/music/"+nfd, "/music/"+nfc), types.ModeDryRun)
	assert.Equal(t, types.StateRenamed, out.State)
	assert.True(t, out.DryRun)

	out = exec.Execute(quarantinePlan("/music/"+nfd, "/music/"+nfc, "/q/"+nfd), types.ModeDryRun)
	assert.Equal(t, types.StateQuarantined, out.State)

	assert.True(t, tree.Exists(nfd))
	assert.False(t, tree.Exists(nfc))
	_, err := tree.FS.Lstat("/q")
	assert.Error(t, err, "dry-run must not create the quarantine root")
	assert.Empty(t, exec.Created())
}

func TestExecute_DryRunSeesEarlierClaims(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	exec := executor.New(executor.Options{FS: tree.FS, QuarantineRoot: "/q"})

	first := exec.Execute(quarantinePlan("/music/a/"+nfd, "/music/a/"+nfc, "/q/"+nfd), types.ModeDryRun)
	second := exec.Execute(quarantinePlan("/music/b/"+nfd, "/music/b/"+nfc, "/q/"+nfd), types.ModeDryRun)

	require.Equal(t, types.StateQuarantined, first.State)
	require.Equal(t, types.StateQuarantined, second.State)
	assert.Equal(t, "/q/"+nfd, first.Plan.Quarantine.Target)
	assert.NotEqual(t, first.Plan.Quarantine.Target, second.Plan.Quarantine.Target)
}

func TestExecute_ApplyRename(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(nfd, "x")
	exec := executor.New(executor.Options{FS: tree.FS})

	out := exec.Execute(applyPlan("/music/"+nfd, "/music/"+nfc), types.ModeApply)

	require.NoError(t, out.Err)
	assert.Equal(t, types.StateRenamed, out.State)
	assert.False(t, out.DryRun)
	assert.False(t, tree.Exists(nfd))
	assert.Equal(t, "x", tree.Read(nfc))
}

func TestExecute_ApplyRefusesToReplace(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(nfd, "decomposed")
	// Target appears between resolve and execute
	tree.File(nfc, "composed")
	exec := executor.New(executor.Options{FS: tree.FS})

	out := exec.Execute(applyPlan("/music/"+nfd, "/music/"+nfc), types.ModeApply)

	assert.Equal(t, types.StateErrored, out.State)
	require.Error(t, out.Err)
	assert.True(t, errors.IsErrorCode(out.Err, errors.ErrMutation))
	assert.ErrorIs(t, out.Err, fs.ErrExist)
	assert.Equal(t, "decomposed", tree.Read(nfd))
	assert.Equal(t, "composed", tree.Read(nfc))
}

func TestExecute_Skips(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	exec := executor.New(executor.Options{FS: tree.FS})

	for _, d := range []types.Disposition{
		types.DispositionSkipAlreadyCanonical,
		types.DispositionSkipIdenticalPath,
		types.DispositionSkipSamefile,
	} {
		plan := applyPlan("/music/a", "/music/a")
		plan.Disposition = d
		out := exec.Execute(plan, types.ModeApply)
		assert.Equal(t, types.StateSkipped, out.State, d)
		assert.NotEmpty(t, out.Reason)
	}
}

func TestExecute_ConflictWithoutQuarantine(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(nfd, "decomposed")
	tree.File(nfc, "composed")
	exec := executor.New(executor.Options{FS: tree.FS})

	plan := applyPlan("/music/"+nfd, "/music/"+nfc)
	plan.Disposition = types.DispositionConflict
	plan.Reason = "canonical name already exists"

	out := exec.Execute(plan, types.ModeApply)
	assert.Equal(t, types.StateConflict, out.State)
	assert.Equal(t, "canonical name already exists", out.Reason)
	assert.True(t, tree.Exists(nfd))
	assert.True(t, tree.Exists(nfc))
}

func TestExecute_QuarantineMove(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File("Album/"+nfd, "decomposed")
	tree.File("Album/"+nfc, "composed")
	exec := executor.New(executor.Options{FS: tree.FS, QuarantineRoot: "/q"})

	out := exec.Execute(quarantinePlan("/music/Album/"+nfd, "/music/Album/"+nfc, "/q/Album/"+nfd), types.ModeApply)

	require.NoError(t, out.Err)
	assert.Equal(t, types.StateQuarantined, out.State)
	assert.Equal(t, "/q/Album/"+nfd, out.Plan.Quarantine.Target)
	assert.Equal(t, []string{"/q", "/q/Album"}, exec.Created())

	assert.False(t, tree.Exists("Album/"+nfd))
	assert.Equal(t, "composed", tree.Read("Album/"+nfc))
	data, err := tree.FS.ReadFile("/q/Album/" + nfd)
	require.NoError(t, err)
	assert.Equal(t, "decomposed", string(data))

	require.NoError(t, exec.Finish())
	_, err = tree.FS.Lstat("/q/Album")
	assert.NoError(t, err, "non-empty quarantine directories are kept")
}

func TestExecute_QuarantineDupSuffix(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File(nfd, "new")
	tree.File(nfc, "composed")
	require.NoError(t, tree.FS.MkdirAll("/q", 0755))
	require.NoError(t, tree.FS.WriteFile("/q/"+nfd, []byte("earlier run"), 0644))
	exec := executor.New(executor.Options{FS: tree.FS, QuarantineRoot: "/q"})

	out := exec.Execute(quarantinePlan("/music/"+nfd, "/music/"+nfc, "/q/"+nfd), types.ModeApply)

	require.NoError(t, out.Err)
	want := "/q/" + testutil.NFD("café") + " - dup1.mp3"
	assert.Equal(t, want, out.Plan.Quarantine.Target)

	data, err := tree.FS.ReadFile("/q/" + nfd)
	require.NoError(t, err)
	assert.Equal(t, "earlier run", string(data))
	data, err = tree.FS.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Empty(t, exec.Created(), "the quarantine root already existed")
}

func TestFinish_RemovesEmptyCreatedDirectories(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	tree.File("Album/"+nfd, "decomposed")
	faulty := testutil.NewFaultyFS(tree.FS)
	faulty.Fail("rename", "/music/Album/"+nfd, fs.ErrPermission)
	exec := executor.New(executor.Options{FS: faulty, QuarantineRoot: "/q"})

	out := exec.Execute(quarantinePlan("/music/Album/"+nfd, "/music/Album/"+nfc, "/q/Album/"+nfd), types.ModeApply)
	assert.Equal(t, types.StateErrored, out.State)
	assert.True(t, errors.IsErrorCode(out.Err, errors.ErrMutation))
	assert.Equal(t, "permission denied", out.Reason)

	require.NoError(t, exec.Finish())
	_, err := tree.FS.Lstat("/q")
	assert.Error(t, err, "empty quarantine root created by the run is removed")
	assert.True(t, tree.Exists("Album/"+nfd))
}

func TestFinish_KeepsPreexistingDirectories(t *testing.T) {
	tree := testutil.NewMemTree(t, "/music")
	require.NoError(t, tree.FS.MkdirAll("/q", 0755))
	exec := executor.New(executor.Options{FS: tree.FS, QuarantineRoot: "/q"})

	require.NoError(t, exec.Finish())
	_, err := tree.FS.Lstat("/q")
	assert.NoError(t, err)
}

func TestDupNamer(t *testing.T) {
	taken := map[string]bool{
		"/q/a.mp3":        true,
		"/q/a - dup1.mp3": true,
		"/q/Album.v2":     true,
	}
	isTaken := func(p string) bool { return taken[p] }

	namer := executor.NewDupNamer()
	assert.Equal(t, "/q/b.mp3", namer.Next("/q/b.mp3", false, isTaken))
	assert.Equal(t, "/q/a - dup2.mp3", namer.Next("/q/a.mp3", false, isTaken))
	assert.Equal(t, "/q/Album.v2 - dup1", namer.Next("/q/Album.v2", true, isTaken))
}
