package domain

import (
	"path/filepath"
)

// Layout derives every artifact path from a job identifier.
//
// Finished movies, previews and intermediates live in OutputDir; staged uploads
// live in UploadDir under their original names.
type Layout struct {
	OutputDir string
	UploadDir string
}

// VideoPath is where the finished movie for jobID is written
func (l Layout) VideoPath(jobID string) string {
	return filepath.Join(l.OutputDir, jobID+".mp4")
}

// PreviewPath is where the preview frame for jobID is written
func (l Layout) PreviewPath(jobID string) string {
	return filepath.Join(l.OutputDir, jobID+"_preview.jpg")
}

// NarrationPath is the per-job narration audio file
func (l Layout) NarrationPath(jobID string) string {
	return filepath.Join(l.OutputDir, jobID+"_narration.mp3")
}

// ManifestPath is the per-job concat manifest
func (l Layout) ManifestPath(jobID string) string {
	return filepath.Join(l.OutputDir, jobID+"_inputs.txt")
}

// JobArtifacts lists every file a job may own, the movie first
func (l Layout) JobArtifacts(jobID string) []string {
	return []string{
		l.VideoPath(jobID),
		l.PreviewPath(jobID),
		l.NarrationPath(jobID),
		l.ManifestPath(jobID),
	}
}

// UploadPath joins the staging directory with an upload's name
func (l Layout) UploadPath(name string) string {
	return filepath.Join(l.UploadDir, name)
}
