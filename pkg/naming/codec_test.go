package naming

import (
	"path/filepath"
	"testing"

	"github.com/oneconcern/vcbackup/internal/rand"
	"github.com/oneconcern/vcbackup/pkg/errors"
	"github.com/oneconcern/vcbackup/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackedFixtures = []string{
	"/home/user/notes.txt",
	"/home/user/hello!world.txt",
	"/srv/project/a b/c.d.e",
	"/srv/project/notes",
	"/srv/.hidden",
	"/tmp/weird[1]{a,b}*?.txt",
	"/notes.txt",
}

func testCodecs(t *testing.T) map[string]*Codec {
	relocated, err := New(
		Rule{Pattern: "^/srv/", Directory: ".bak"},
		Rule{Pattern: ".", Directory: "/var/backups"},
	)
	require.NoError(t, err)

	subdir, err := New(Rule{Pattern: ".", Directory: "backups/old"})
	require.NoError(t, err)

	return map[string]*Codec{
		"same directory": Default(),
		"relocated":      relocated,
		"subdirectory":   subdir,
	}
}

func TestRoundTrip(t *testing.T) {
	tags := []model.Tag{model.Previous, model.Numbered(1), model.Numbered(42), model.Numbered(1000)}

	for policy, codec := range testCodecs(t) {
		for _, tracked := range trackedFixtures {
			for _, tag := range tags {
				name := codec.BackupName(tracked, tag)
				assert.Equal(t, codec.BackupDir(tracked), filepath.Dir(name), "%s: %s", policy, name)

				got, err := codec.TrackedPath(name)
				require.NoError(t, err, "%s: %s", policy, name)
				assert.Equal(t, tracked, got, "%s: %s", policy, name)

				extracted, err := ExtractTag(name)
				require.NoError(t, err)
				assert.Equal(t, tag, extracted, "%s: %s", policy, name)

				matcher, err := codec.Matcher(tracked)
				require.NoError(t, err)
				assert.Equal(t, matcher.Dir, filepath.Dir(name))
				matched, ok, err := matcher.Match(filepath.Base(name))
				require.NoError(t, err)
				require.True(t, ok, "%s: %s", policy, name)
				assert.Equal(t, tag, matched)
			}

			// tracked paths are left unchanged
			got, err := codec.TrackedPath(tracked)
			require.NoError(t, err)
			assert.Equal(t, tracked, got)
		}
	}
}

func TestRandomRoundTrip(t *testing.T) {
	codecs := testCodecs(t)

	for i := 0; i < 500; i++ {
		tracked := rand.TrackedPath(4, 10)
		tag := model.Numbered(uint64(i + 1))
		if i%3 == 0 {
			tag = model.Previous
		}

		for policy, codec := range codecs {
			name := codec.BackupName(tracked, tag)
			got, err := codec.TrackedPath(name)
			require.NoError(t, err, "%s: %s", policy, name)
			require.Equal(t, tracked, got, "%s: %s", policy, name)

			matcher, err := codec.Matcher(tracked)
			require.NoError(t, err)
			matched, ok, err := matcher.Match(filepath.Base(name))
			require.NoError(t, err, "%s: %s", policy, name)
			require.True(t, ok, "%s: %s", policy, name)
			require.Equal(t, tag, matched, "%s: %s", policy, name)
		}
	}
}

func TestBackupNames(t *testing.T) {
	codecs := testCodecs(t)

	assert.Equal(t, "/home/user/notes.txt~", codecs["same directory"].UnnumberedName("/home/user/notes.txt"))
	assert.Equal(t, "/home/user/notes.txt.~3~", codecs["same directory"].NumberedName("/home/user/notes.txt", 3))
	assert.Equal(t, "/home/user/notes.txt", codecs["same directory"].BackupName("/home/user/notes.txt", model.Current))

	relocated := codecs["relocated"]
	assert.Equal(t, "/var/backups/!home!user!hello!!world.txt~", relocated.UnnumberedName("/home/user/hello!world.txt"))
	assert.Equal(t, "/srv/project/.bak/notes.~12~", relocated.NumberedName("/srv/project/notes", 12))
	assert.Equal(t, "/home/user/backups/old/notes.txt~", codecs["subdirectory"].UnnumberedName("/home/user/notes.txt"))
}

func TestSplitName(t *testing.T) {
	for _, fixture := range []struct {
		name      string
		stem      string
		tag       model.Tag
		wantError bool
	}{
		{name: "notes.txt", stem: "notes.txt", tag: model.Current},
		{name: "notes.txt~", stem: "notes.txt", tag: model.Previous},
		{name: "notes.txt.~42~", stem: "notes.txt", tag: model.Numbered(42)},
		{name: "notes.txt.~1~.~2~", stem: "notes.txt.~1~", tag: model.Numbered(2)},
		{name: "notes.~x~", wantError: true},
		{name: "notes.~0~", wantError: true},
		{name: "notes.~007~", wantError: true},
		{name: "notes.~~", wantError: true},
		{name: "~", wantError: true},
	} {
		stem, tag, err := SplitName(fixture.name)
		if fixture.wantError {
			require.Error(t, err, fixture.name)
			assert.True(t, errors.Is(err, model.ErrMalformedBackupName), fixture.name)
			continue
		}
		require.NoError(t, err, fixture.name)
		assert.Equal(t, fixture.stem, stem, fixture.name)
		assert.Equal(t, fixture.tag, tag, fixture.name)
	}

	_, err := Default().TrackedPath("/home/user/notes.txt.~oops~")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedBackupName))
}

func TestMatcher(t *testing.T) {
	matcher, err := Default().Matcher("/work/notes")
	require.NoError(t, err)
	assert.Equal(t, "/work", matcher.Dir)

	for _, fixture := range []struct {
		name      string
		tag       model.Tag
		match     bool
		wantError bool
	}{
		{name: "notes~", tag: model.Previous, match: true},
		{name: "notes.~3~", tag: model.Numbered(3), match: true},
		{name: "notes", match: false},
		{name: "notes.txt~", match: false},
		{name: "notes.txt.~1~", match: false},
		{name: "mynotes~", match: false},
		{name: "notes~~", match: false},
		{name: "notes.~1~.~2~", match: false},
		{name: "notes.~x~", match: true, wantError: true},
	} {
		tag, ok, err := matcher.Match(fixture.name)
		if fixture.wantError {
			require.Error(t, err, fixture.name)
			assert.True(t, errors.Is(err, model.ErrMalformedBackupName))
			continue
		}
		require.NoError(t, err, fixture.name)
		assert.Equal(t, fixture.match, ok, fixture.name)
		if ok {
			assert.Equal(t, fixture.tag, tag, fixture.name)
		}
	}
}

func TestTrackedNameLikeNumberedSuffix(t *testing.T) {
	const report = "/srv/report.~draft"

	for policy, codec := range testCodecs(t) {
		matcher, err := codec.Matcher(report)
		require.NoError(t, err)

		previous := codec.UnnumberedName(report)
		tag, ok, err := matcher.Match(filepath.Base(previous))
		require.NoError(t, err, "%s: %s", policy, previous)
		require.True(t, ok, "%s: %s", policy, previous)
		assert.Equal(t, model.Previous, tag)

		numbered := codec.NumberedName(report, 3)
		tag, ok, err = matcher.Match(filepath.Base(numbered))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, model.Numbered(3), tag)

		got, err := codec.TrackedPath(numbered)
		require.NoError(t, err)
		assert.Equal(t, report, got)

		// out of context, the unnumbered name is a malformed numbered one
		_, err = codec.TrackedPath(previous)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrMalformedBackupName))

		got, ok = codec.UnnumberedTrackedPath(previous)
		require.True(t, ok, "%s: %s", policy, previous)
		assert.Equal(t, report, got, policy)
	}

	// for the "report" matcher, it is a malformed backup
	matcher, err := Default().Matcher("/srv/report")
	require.NoError(t, err)
	_, _, err = matcher.Match("report.~draft~")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedBackupName))

	for _, path := range []string{"/srv/report", "/srv/~"} {
		_, ok := Default().UnnumberedTrackedPath(path)
		assert.False(t, ok, path)
	}
	// not an escaped name in a shared directory
	_, ok := testCodecs(t)["relocated"].UnnumberedTrackedPath("/var/backups/report~")
	assert.False(t, ok)
}

func TestSharedDirectoryAmbiguity(t *testing.T) {
	codec, err := New(Rule{Pattern: ".", Directory: "/var/backups"})
	require.NoError(t, err)

	// a marker next to a separator does not survive the round trip: pairs decode first
	for tracked, decoded := range map[string]string{
		"/home/u/!notes": "/home/u!/notes",
		"/home/u!/notes": "/home/u!/notes",
		"/home/u/!!x":    "/home/u!!/x",
	} {
		name := codec.UnnumberedName(tracked)
		got, err := codec.TrackedPath(name)
		require.NoError(t, err, name)
		assert.Equal(t, decoded, got, name)
	}
	assert.Equal(t, codec.UnnumberedName("/home/u/!notes"), codec.UnnumberedName("/home/u!/notes"))
}

func TestSearchPattern(t *testing.T) {
	dir, pattern := Default().SearchPattern("/work/a*b.txt")
	assert.Equal(t, "/work", dir)
	assert.Equal(t, `{a\*b.txt~,a\*b.txt.~*~}`, pattern)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "!home!user!a!!b", Escape("/home/user/a!b"))

	unescaped, ok := Unescape("!home!user!a!!b")
	require.True(t, ok)
	assert.Equal(t, "/home/user/a!b", unescaped)

	_, ok = Unescape("home!user")
	assert.False(t, ok)

	// a marker next to a separator is ambiguous: pairs are decoded first
	assert.Equal(t, "!a!!!b", Escape("/a/!b"))
	unescaped, ok = Unescape("!a!!!b")
	require.True(t, ok)
	assert.Equal(t, "/a!/b", unescaped)
}

func TestNewRejectsBadRules(t *testing.T) {
	_, err := New(Rule{Pattern: "(", Directory: "/b"})
	require.Error(t, err)

	_, err = New(Rule{Pattern: "."})
	require.Error(t, err)

	c, err := New(Rule{Pattern: ".", Directory: "/b/"})
	require.NoError(t, err)
	require.Len(t, c.Rules(), 1)
	assert.Equal(t, "/b", c.Rules()[0].Directory)
}
