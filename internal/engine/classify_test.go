package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		returnCode int
		stdout     string
		stderr     string
		want       bool
	}{
		{"nmap clean run", "nmap", 0, "PORT STATE SERVICE", "", true},
		{"nmap zero exit but error marker", "nmap", 0, "", "Error: invalid option", false},
		{"nmap error marker in stdout", "nmap", 0, "QUITTING! invalid option -xZ", "", false},
		{"nmap non-zero exit", "nmap", 1, "PORT STATE SERVICE", "", false},
		{"masscan bang marker", "masscan", 0, "[!] could not open adapter", "", false},
		{"amass clean", "amass", 0, "sub.example.com", "", true},
		{"dnsenum benign query failures", "dnsenum", 1, "", "query failed for x", true},
		{"dnsenum noerror marker", "dnsenum", 2, "", "response code NOERROR", true},
		{"dnsenum missing perl module", "dnsenum", 1, "", "Can't locate Net::DNS in @INC", false},
		{"dnsenum missing module despite zero exit", "dnsenum", 0, "", "can't locate Net::DNS", false},
		{"dnsenum zero exit", "dnsenum", 0, "", "", true},
		{"dnsenum non-zero without benign marker", "dnsenum", 1, "", "something else broke", false},
		{"recon-ng traceback", "recon-ng", 0, "", "Traceback (most recent call last)", false},
		{"recon-ng clean", "recon-ng", 0, "[*] 12 hosts found", "", true},
		{"recon-ng non-zero", "recon-ng", 1, "", "", false},
		{"dirsearch stderr error", "dirsearch", 0, "", "error while connecting", false},
		{"theharvester clean, stdout ignored", "theharvester", 0, "error shown to user", "", true},
		{"tool name case insensitive", "theHarvester", 0, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.tool, tt.returnCode, tt.stdout, tt.stderr)
			assert.Equal(t, tt.want, got)
		})
	}
}
