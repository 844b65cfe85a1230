package doctor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func fakeDoctor(installed map[string]bool, nodeVersion string) *Doctor {
	return &Doctor{
		LookPath: func(file string) (string, error) {
			if installed[file] {
				return "/usr/bin/" + file, nil
			}
			return "", errors.New("not found")
		},
		Version: func(_ context.Context, bin string) (string, error) {
			if nodeVersion == "" {
				return "", errors.New("exit status 1")
			}
			return nodeVersion + "\n", nil
		},
	}
}

func allTools() map[string]bool {
	return map[string]bool{"node": true, "npm": true, "typings": true, "git": true}
}

func TestCheckAllPresent(t *testing.T) {
	findings := fakeDoctor(allTools(), "v20.11.0").Check(context.Background())

	var buf bytes.Buffer
	if problems := Print(&buf, findings); problems != 0 {
		t.Errorf("got %d problems, want 0:\n%s", problems, buf.String())
	}
	if !strings.Contains(buf.String(), "node v20.11.0 >= 4.0.0") {
		t.Errorf("missing version line:\n%s", buf.String())
	}
}

func TestCheckMissingTool(t *testing.T) {
	tools := allTools()
	delete(tools, "typings")

	var buf bytes.Buffer
	problems := Print(&buf, fakeDoctor(tools, "v20.11.0").Check(context.Background()))
	if problems != 1 {
		t.Errorf("got %d problems, want 1", problems)
	}
	if !strings.Contains(buf.String(), "[MISS] typings not found") {
		t.Errorf("missing MISS line:\n%s", buf.String())
	}
}

func TestCheckNodeVersion(t *testing.T) {
	tests := []struct {
		version string
		want    Status
	}{
		{"v20.11.0", StatusOK},
		{"v4.0.0", StatusOK},
		{"v0.12.7", StatusWarn},
		{"garbage", StatusWarn},
		{"", StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			findings := fakeDoctor(map[string]bool{"node": true}, tt.version).Check(context.Background())
			// The version finding follows the "node found" finding.
			if len(findings) < 2 || findings[1].Tool != "node" {
				t.Fatalf("no node version finding in %+v", findings)
			}
			nodeVersion := findings[1]
			if nodeVersion.Status != tt.want {
				t.Errorf("status = %q, want %q (%s)", nodeVersion.Status, tt.want, nodeVersion.Detail)
			}
		})
	}
}
