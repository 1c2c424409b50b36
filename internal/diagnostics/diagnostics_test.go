package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_Accumulation(t *testing.T) {
	d := New()
	assert.False(t, d.HasErrors())

	d.PushWarning(NewEntityNamingWarning("user_account"))
	assert.False(t, d.HasErrors(), "warnings alone are not errors")

	d.PushError(NewMissingPrimaryKeyError("User"))
	d.PushError(NewDuplicateEntityError("User"))
	assert.True(t, d.HasErrors())
	assert.Len(t, d.Errors(), 2)
	assert.Len(t, d.Warnings(), 1)
}

func TestDiagnostics_Merge(t *testing.T) {
	a := New()
	a.PushError(NewMissingPrimaryKeyError("User"))

	b := New()
	b.PushError(NewDuplicateFieldError("User", "email"))
	b.PushWarning(NewMissingForeignKeyWarning("Post", "author"))

	a.Merge(b)
	assert.Len(t, a.Errors(), 2)
	assert.Len(t, a.Warnings(), 1)
}

func TestErrorMessages(t *testing.T) {
	d := New()
	d.PushError(NewUnknownRelationTargetError("Post", "author", "Writer"))
	d.PushError(NewMissingPrimaryKeyError("Post"))

	msgs := d.ErrorMessages()
	assert.Equal(t, []string{
		"Entity Post.author: relationship target 'Writer' does not exist",
		"Entity Post has no primary key field",
	}, msgs)

	assert.Contains(t, d.JoinErrors(), "relationship target 'Writer' does not exist")
}
