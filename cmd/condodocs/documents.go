package main

import (
	"github.com/spf13/cobra"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/organizer"
)

// loadDocuments lists the PDFs of dir and extracts their identifiers,
// drawing a progress bar on stderr.
func (c *commandContext) loadDocuments(cmd *cobra.Command, s *session, dir string, exclude []string, kind identifier.Kind, label string) ([]classify.Document, error) {
	names, err := classify.ScanDir(dir, exclude)
	if err != nil {
		return nil, err
	}
	bar := c.newProgress(cmd.ErrOrStderr(), len(names), label)
	defer bar.Finish()
	return classify.LoadDocuments(s.ctx, dir, names, c.extractor, kind, s.logger, func(classify.Document) {
		bar.Add()
	})
}

// newOrganizer builds the run's organizer with a placement spinner on
// stderr. Call done once placements finish.
func (c *commandContext) newOrganizer(cmd *cobra.Command, s *session) (org *organizer.Organizer, done func(), err error) {
	bar := c.newProgress(cmd.ErrOrStderr(), -1, "placing")
	org, err = s.newOrganizer(func(organizer.Placement, organizer.Outcome) {
		bar.Add()
	})
	return org, bar.Finish, err
}
