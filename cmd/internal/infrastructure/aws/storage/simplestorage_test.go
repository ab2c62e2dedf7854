package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://fotos.s3.us-east-2.amazonaws.com/alunos/1/abc.png",
		PublicURL("fotos", "us-east-2", "alunos/1/abc.png"),
	)
	assert.Empty(t, PublicURL("fotos", "us-east-2", ""))
}

func TestAlunoPhotoKey(t *testing.T) {
	assert.Equal(t, "alunos/42/f00.jpg", AlunoPhotoKey(42, "f00", ".JPG"))
}
