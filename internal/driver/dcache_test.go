package driver

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
)

func TestDiskCache(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	env := defaultEnv(t)
	in := inputs("a.cs2", `[proc,a] mes("a");`)
	key := BatchKey(env, in, Options{})

	var out CachePayload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	res := compileOK(t, env, Options{}, in)
	payload := &CachePayload{FilePaths: []string{"a.cs2"}}
	for _, s := range res.Scripts() {
		payload.Objects = append(payload.Objects, *NewObject(s, env.Instructions))
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ok, err := c.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(out.Objects) != 1 || out.Objects[0].Name != "[proc,a]" || out.Schema != diskCacheSchemaVersion {
		t.Fatalf("payload = %+v", out)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	out = CachePayload{}
	if ok, _ := c.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put after DropAll: %v", err)
	}
}

func TestBatchKey(t *testing.T) {
	env := defaultEnv(t)
	a := Input{Path: "a.cs2", Content: []byte("[proc,a] mes(\"a\");")}
	b := Input{Path: "b.cs2", Content: []byte("[proc,b] mes(\"b\");")}
	key := BatchKey(env, []Input{a, b}, Options{})

	if BatchKey(env, []Input{b, a}, Options{}) != key {
		t.Fatal("key depends on input order")
	}
	changed := b
	changed.Content = []byte("[proc,b] mes(\"c\");")
	cases := map[string]project.Digest{
		"content":  BatchKey(env, []Input{a, changed}, Options{}),
		"optimize": BatchKey(env, []Input{a, b}, Options{Optimize: true}),
		"renamed":  BatchKey(env, []Input{a, {Path: "c.cs2", Content: b.Content}}, Options{}),
		"no env":   BatchKey(nil, []Input{a, b}, Options{}),
	}
	for name, k := range cases {
		if k == key {
			t.Errorf("%s: key unchanged", name)
		}
	}
}
