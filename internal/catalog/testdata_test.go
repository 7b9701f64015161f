package catalog

import (
	"testing/fstest"
	"time"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func md(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"books/p1.md": md("---\ntitle: Pilgrim's Progress\nauthor: John Bunyan\nprice: 5000\ncategory: Classics\nfeatured: true\nstock: 4\nisbn: 978-0\npages: 320\n---\nAn allegory.\n"),
		"books/p2.md": md("---\ntitle: Mere Christianity\nauthor: C.S. Lewis\nprice: \"3000\"\ncategory: Apologetics\nfeatured: true\nstock: -2\n---\n"),
		"books/p3.md": md("---\ntitle: Untitled Draft\nprice: free\nstock: lots\npages: many\n---\nDraft body used as description.\n"),
		"books/p4.md": md("---\ntitle: Confessions\nauthor: Augustine\nprice: -10\nfeatured: true\n---\n"),
		"books/p5.md": md("no front matter at all\n"),

		"authors/lewis.md":  md("---\nname: c.s. Lewis\nbook_count: 3\n---\nOxford don.\n"),
		"authors/bunyan.md": md("---\nname: John Bunyan\nbio: Tinker and preacher.\n---\n"),
		"authors/anon.md":   md("---\nbook_count: nope\n---\n"),

		"events/launch.md":  md("---\ntitle: Book Launch\ndate: 2025-07-04\nlocation: Main Hall\n---\n"),
		"events/retreat.md": md("---\ntitle: Retreat\ndate: 2025-01-10\n---\n"),
		"events/forced.md":  md("---\ntitle: Archived Talk\ndate: 2026-01-01\nis_past: true\n---\n"),
		"events/undated.md": md("---\ntitle: Someday\n---\n"),

		"collections/c.md": md("---\ntitle: Youth\norder: 2\n---\n"),
		"collections/a.md": md("---\ntitle: Devotionals\norder: 1\n---\n"),
		"collections/b.md": md("---\ntitle: Bibles\norder: 1\ncount: 12\n---\n"),

		"gallery/photos/two.md":      md("---\ntitle: Two\norder: 2\n---\n"),
		"gallery/photos/one.md":      md("---\ntitle: One\norder: 1\n---\n"),
		"gallery/podcasts/ep1.md":    md("---\ntitle: Episode 1\n---\nShow notes.\n"),
		"gallery/videos/sermon.md":   md("---\ntitle: Sermon\nurl: https://video.example/1\n---\n"),
		"testimonials/happy.md":      md("---\nname: Ada\nrating: 9\n---\nLoved it.\n"),
		"testimonials/hidden.md":     md("---\nname: Bob\napproved: false\n---\nmeh\n"),
		"testimonials/unrated.md":    md("---\nname: Cy\nrating: \"n/a\"\n---\nGood.\n"),
		"blog/older.md":              md("---\ntitle: Older\ndate: 2024-01-01\ntags: [news]\n---\nline one\nline two\nline three\nline four\n"),
		"blog/newer.md":              md("---\ntitle: Newer\ndate: 2025-02-01\nexcerpt: Short.\n---\nBody.\n"),
		"pages/about.md":             md("---\ntitle: Our Story\nstory:\n  - paragraph: First.\n  - Second.\n  - \"  \"\nvalues:\n  - title: Faith\n    description: Rooted.\n  - title: Incomplete\nmission:\n  body: Spread the word.\n---\n"),
		"books/ignored-notes.txt":    md("not markdown"),
		"gallery/photos/nested/x.md": md("---\ntitle: Nested\n---\n"),
	}
}
