/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typeid/catalog"
	"dirpx.dev/typeid/config"
)

const model = `package shop

type Widget struct {
	Tags Box[[]string]
}

type Box[T any] struct{ V T }

//typeid:type Widget
type Gadget struct{}
`

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/shop\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.go"), []byte(model), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "typeid version "+Version+"\n", out)
}

func TestScan_Table(t *testing.T) {
	dir := setup(t)

	out, stderr, err := run(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Box_List_string")
	assert.Contains(t, out, "WidgetInput")
	assert.Contains(t, out, "collision: Widget")
	assert.Contains(t, out, "1 collisions")
	assert.Contains(t, stderr, "Schema name collision")
}

func TestScan_JSON(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, "scan", dir, "-o", "json")
	require.NoError(t, err)

	var res catalog.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Packages)
	assert.Len(t, res.Collisions, 1)

	var names []string
	for _, e := range res.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Box_List_string", "Box_List_stringInput", "GadgetInput", "Widget", "Widget", "WidgetInput"}, names)
}

func TestScan_YAMLWithConfig(t *testing.T) {
	dir := setup(t)
	cfgPath := filepath.Join(t.TempDir(), "typeid.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
naming:
  inputPostfix: Args
  suffixSeparator: "Of"
`), 0o644))

	out, _, err := run(t, "scan", dir, "--config", cfgPath, "--format", "yaml")
	require.NoError(t, err)

	var res catalog.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	var names []string
	for _, e := range res.Entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "BoxOfListOfstring")
	assert.Contains(t, names, "BoxOfListOfstringArgs")
	assert.Contains(t, names, "WidgetArgs")
}

func TestScan_StrictFailsOnCollision(t *testing.T) {
	dir := setup(t)

	_, _, err := run(t, "scan", dir, "--strict", "-o", "json")
	assert.ErrorIs(t, err, errCollisions)
}

func TestScan_Metrics(t *testing.T) {
	dir := setup(t)

	_, stderr, err := run(t, "scan", dir, "--metrics", "-o", "json", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stderr, `typeid_resolutions_total{role="TYPE",source="default"}`)
	assert.Contains(t, stderr, "typeid_collisions_total 1")
}

func TestScan_RoleFilter(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, "scan", dir, "-o", "json", "--role", "input")
	require.NoError(t, err)

	var res catalog.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	var names []string
	for _, e := range res.Entries {
		assert.Equal(t, "INPUT", e.Role)
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Box_List_stringInput", "GadgetInput", "WidgetInput"}, names)
	assert.Len(t, res.Collisions, 1)

	_, _, err = run(t, "scan", dir, "--role", "output")
	assert.ErrorContains(t, err, `unknown role "output"`)
}

func TestScan_Errors(t *testing.T) {
	dir := setup(t)

	_, _, err := run(t, "scan", dir, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "scan", filepath.Join(dir, "missing"))
	assert.ErrorContains(t, err, "expand paths")

	_, _, err = run(t, "scan", dir, "--log-level", "loud")
	assert.ErrorContains(t, err, "log.level")
}

func TestWatch_Relevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/m/shop.go", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/m/shop.go", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/m/shop.go", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/m/shop_test.go", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/m/README.md", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relevant(tt.event), "%s %s", tt.event.Op, tt.event.Name)
	}
}

func TestWatch_RescanHonorsStrictAndMetrics(t *testing.T) {
	dir := setup(t)
	cfg := config.DefaultFile()
	cfg.Scan.Include = []string{dir}
	cfg.Scan.Strict = true

	var stdout, stderr bytes.Buffer
	s, err := newScanner(cfg, newLogger(&stderr, "info", "text"))
	require.NoError(t, err)
	w := &watcher{scanner: s, format: "table", metrics: true, out: &globals{stdout: &stdout, stderr: &stderr}}

	w.rescan(context.Background())
	assert.Contains(t, stdout.String(), "Box_List_string")
	assert.Contains(t, stderr.String(), "Strict scan failed")
	assert.Contains(t, stderr.String(), "typeid_collisions_total 1")

	w.rescan(context.Background())
	assert.Contains(t, stderr.String(), "typeid_collisions_total 2")
}

func TestWatch_QuietWithoutFlags(t *testing.T) {
	dir := setup(t)
	cfg := config.DefaultFile()
	cfg.Scan.Include = []string{dir}

	var stdout, stderr bytes.Buffer
	s, err := newScanner(cfg, newLogger(&stderr, "info", "text"))
	require.NoError(t, err)
	w := &watcher{scanner: s, format: "json", out: &globals{stdout: &stdout, stderr: &stderr}}

	w.rescan(context.Background())
	assert.Contains(t, stdout.String(), "Box_List_string")
	assert.NotContains(t, stderr.String(), "Strict scan failed")
	assert.NotContains(t, stderr.String(), "typeid_")
}
