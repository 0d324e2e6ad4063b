// Package postprocess routes produced artifacts to differentiated upload
// channels and conditionally deletes local state.
package postprocess

import "github.com/reconvoy/reconvoy/internal/store"

// Upload is one artifact routing rule: which file in the tool's output
// directory goes to which channel, optionally renamed remotely. Required
// uploads treat a missing source file as a failed upload, blocking cleanup.
type Upload struct {
	File     string
	Channel  store.Channel
	As       string
	Required bool
}

// Policy is the full routing table for one tool. Tools without a policy fall
// back to the default processor, which uploads every artifact for review.
type Policy struct {
	Uploads []Upload
}

// policies returns the per-tool routing tables. Adding a tool means adding an
// entry here, not touching the dispatch logic.
func policies() map[string]Policy {
	return map[string]Policy{
		"masscan": {Uploads: []Upload{
			{File: "masscan_scan.json", Channel: store.ChannelLLM, Required: true},
			{File: "masscan_scan.json", Channel: store.ChannelReview, Required: true},
		}},
		"amass": {Uploads: []Upload{
			{File: "amass_scan.txt", Channel: store.ChannelLLM, Required: true},
			{File: "amass_scan.txt", Channel: store.ChannelReview, Required: true},
		}},
		"subfinder": {Uploads: []Upload{
			{File: "subfinder_scan.json", Channel: store.ChannelReview, Required: true},
		}},
		"theharvester": {Uploads: []Upload{
			{File: "theharvester_scan.json", Channel: store.ChannelLLM},
			{File: "theharvester_scan.json", Channel: store.ChannelReview},
			{File: "output.stdout", Channel: store.ChannelReview},
		}},
		"recon-ng": {Uploads: []Upload{
			{File: "report.html", Channel: store.ChannelReview},
			{File: "output.stdout", Channel: store.ChannelReview},
		}},
		"gobuster": {Uploads: []Upload{
			{File: "gobuster_scan.txt", Channel: store.ChannelReview},
			{File: "output.stdout", Channel: store.ChannelReview},
			{File: "output.stdout", Channel: store.ChannelLLM, As: "gobuster_output.txt"},
		}},
		"dirsearch": {Uploads: []Upload{
			{File: "dirsearch_scan.txt", Channel: store.ChannelReview, Required: true},
		}},
		"whatweb": {Uploads: []Upload{
			{File: "whatweb_scan.txt", Channel: store.ChannelLLM, Required: true},
			{File: "whatweb_scan.txt", Channel: store.ChannelReview, Required: true},
		}},
		"nmap": {Uploads: []Upload{
			{File: "output.stdout", Channel: store.ChannelLLM, As: "nmap_output.txt"},
			{File: "output.stdout", Channel: store.ChannelReview},
			{File: "nmap_scan.xml", Channel: store.ChannelReview},
		}},
		"dnsenum": {Uploads: []Upload{
			{File: "output.stdout", Channel: store.ChannelReview},
			{File: "output.stderr", Channel: store.ChannelReview},
			{File: "dnsenum_scan.xml", Channel: store.ChannelReview},
		}},
	}
}
