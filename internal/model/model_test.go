package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType_EnumRef(t *testing.T) {
	tests := []struct {
		name     string
		dt       DataType
		wantRef  string
		wantIsRef bool
	}{
		{"single element is a reference", DataType{Type: KindEnum, Enum: []string{"UserRole"}}, "UserRole", true},
		{"multiple elements are inline", DataType{Type: KindEnum, Enum: []string{"A", "B"}}, "", false},
		{"empty enum is not a reference", DataType{Type: KindEnum}, "", false},
		{"non-enum kind is never a reference", DataType{Type: KindString, Enum: []string{"UserRole"}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := tt.dt.EnumRef()
			assert.Equal(t, tt.wantIsRef, ok)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestRelationship_ToMany(t *testing.T) {
	assert.True(t, (&Relationship{Type: OneToMany}).ToMany())
	assert.True(t, (&Relationship{Type: ManyToMany}).ToMany())
	assert.False(t, (&Relationship{Type: ManyToOne}).ToMany())
	assert.False(t, (&Relationship{Type: OneToOne}).ToMany())
}

func TestDataModel_Lookups(t *testing.T) {
	m := &DataModel{
		Entities: []Entity{
			{Name: "User", Fields: []EntityField{
				{Name: "id", IsPrimaryKey: true},
				{Name: "email"},
			}},
			{Name: "Post", Fields: []EntityField{{Name: "title"}}},
		},
		Enums: []EnumDefinition{{Name: "UserRole", Values: []string{"ADMIN", "USER"}}},
	}

	t.Run("entity names", func(t *testing.T) {
		names := m.EntityNames()
		assert.True(t, names["User"])
		assert.True(t, names["Post"])
		assert.False(t, names["Comment"])
	})

	t.Run("enum lookup", func(t *testing.T) {
		enum, ok := m.EnumByName("UserRole")
		require.True(t, ok)
		assert.Equal(t, []string{"ADMIN", "USER"}, enum.Values)

		_, ok = m.EnumByName("Missing")
		assert.False(t, ok)
	})

	t.Run("primary key", func(t *testing.T) {
		pk, ok := m.Entities[0].PrimaryKey()
		require.True(t, ok)
		assert.Equal(t, "id", pk.Name)

		_, ok = m.Entities[1].PrimaryKey()
		assert.False(t, ok)
	})
}
