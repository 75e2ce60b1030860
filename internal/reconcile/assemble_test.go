package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkwm713/makeready-cli/internal/model"
)

func TestAction_Priority(t *testing.T) {
	install := att("a", nil, model.Height(400.0), model.ChangeInstall)
	remove := att("b", model.Height(300.0), nil, model.ChangeRemove)
	existing := att("c", model.Height(350.0), nil, model.ChangeUnchanged)
	moved := att("d", model.Height(350.0), model.Height(360.0), model.ChangeMove)

	assert.Equal(t, model.ActionInstalling, Action([]model.Attachment{existing, remove, install}))
	assert.Equal(t, model.ActionInstalling, Action([]model.Attachment{moved, install}))
	assert.Equal(t, model.ActionRemoving, Action([]model.Attachment{existing, remove}))
	assert.Equal(t, model.ActionRemoving, Action([]model.Attachment{moved, remove}))
	// moves alone are not an install and not a removal
	assert.Equal(t, model.ActionExisting, Action([]model.Attachment{existing, moved}))
	assert.Equal(t, model.ActionExisting, Action([]model.Attachment{existing}))
	assert.Equal(t, model.ActionExisting, Action(nil))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Make Ready Required", Status(model.ActionInstalling))
	assert.Equal(t, "Removal Required", Status(model.ActionRemoving))
	assert.Equal(t, "No Change", Status(model.ActionExisting))
}

func TestRows_Sequence(t *testing.T) {
	primary := []model.Attachment{
		neutralAt(355.5),
		commAt("AT&T Fiber Optic Com", 330.0),
	}
	neutral := &primary[0]

	spans := []model.Span{
		{Kind: model.SpanPrimary, LowestComm: model.Height(260.0)},
		{
			Kind:   model.SpanReference,
			Header: "Ref (North East) to 410621",
			Attachments: []model.Attachment{
				commAt("AT&T Fiber Optic Com", 330.0),
				commAt("too high", 400.0),
			},
		},
		{
			Kind:        model.SpanBackspan,
			Header:      "Backspan to 410619",
			Attachments: []model.Attachment{commAt("AT&T Fiber Optic Com", 331.0)},
		},
	}

	rows := Rows(primary, spans, neutral)
	require.Len(t, rows, 6)

	// primary attachments first
	assert.Equal(t, model.RowAttachment, rows[0].Kind)
	assert.Equal(t, "Neutral", rows[0].Attachment.Description)
	assert.Equal(t, "AT&T Fiber Optic Com", rows[1].Attachment.Description)

	// backspan before references, each header then filtered items
	assert.Equal(t, model.RowHeader, rows[2].Kind)
	assert.Equal(t, "Backspan to 410619", rows[2].Header)
	assert.Equal(t, model.SpanBackspan, rows[3].SpanKind)

	assert.Equal(t, model.RowHeader, rows[4].Kind)
	assert.Equal(t, "Ref (North East) to 410621", rows[4].Header)
	// the 400.0 item is above the neutral and filtered out
	assert.Equal(t, "AT&T Fiber Optic Com", rows[5].Attachment.Description)
}

func TestRows_NoSpans(t *testing.T) {
	primary := []model.Attachment{commAt("AT&T Fiber Optic Com", 330.0)}
	rows := Rows(primary, nil, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, model.RowAttachment, rows[0].Kind)
}
