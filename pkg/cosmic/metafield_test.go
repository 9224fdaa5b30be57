// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestValidateMetafields(t *testing.T) {
	valid := []Metafield{
		{Type: MetafieldText, Key: "headline", Title: "Headline", Required: true},
		{Type: MetafieldSelectDropdown, Key: "category", Title: "Category", Options: []MetafieldOption{
			{Value: "news"},
			{Value: "opinion"},
		}},
		{Type: MetafieldRepeater, Key: "sections", Title: "Sections", Children: []Metafield{
			{Type: MetafieldMarkdown, Key: "body", Title: "Body"},
			{Type: MetafieldParent, Key: "related", Title: "Related", Children: []Metafield{
				{Type: MetafieldFile, Key: "hero", Title: "Hero"},
			}},
		}},
	}
	require.NoError(t, ValidateMetafields(valid))

	missingKey := []Metafield{{Type: MetafieldText, Title: "Headline"}}
	require.Error(t, ValidateMetafields(missingKey))

	missingTitle := []Metafield{{Type: MetafieldText, Key: "headline"}}
	require.Error(t, ValidateMetafields(missingTitle))

	unknownKind := []Metafield{{Type: "dropdown", Key: "category", Title: "Category"}}
	require.Error(t, ValidateMetafields(unknownKind))

	choiceWithoutOptions := []Metafield{{Type: MetafieldRadioButtons, Key: "category", Title: "Category"}}
	require.Error(t, ValidateMetafields(choiceWithoutOptions))

	childrenOnScalar := []Metafield{{Type: MetafieldText, Key: "headline", Title: "Headline", Children: []Metafield{
		{Type: MetafieldText, Key: "sub", Title: "Sub"},
	}}}
	require.Error(t, ValidateMetafields(childrenOnScalar))

	invalidNestedChild := []Metafield{{Type: MetafieldRepeater, Key: "sections", Title: "Sections", Children: []Metafield{
		{Type: MetafieldCheckBoxes, Key: "tags", Title: "Tags"},
	}}}
	require.Error(t, ValidateMetafields(invalidNestedChild))
}

func TestChoiceAndCompositeKindsDisjoint(t *testing.T) {
	for _, kind := range MetafieldKinds {
		require.False(t, IsChoiceKind(kind) && IsCompositeKind(kind), kind)
	}
	require.False(t, IsChoiceKind("dropdown"))
	require.False(t, IsCompositeKind("dropdown"))
}

// genMetafield generates a valid metafield of bounded nesting depth.
func genMetafield(depth int) gopter.Gen {
	scalarKinds := []string{
		MetafieldText, MetafieldTextarea, MetafieldHTMLTextarea,
		MetafieldMarkdown, MetafieldNumber, MetafieldSwitch,
		MetafieldDate, MetafieldJSON, MetafieldFile, MetafieldFiles,
	}

	scalar := gopter.CombineGens(
		gen.OneConstOf(scalarKinds[0], scalarKinds[1], scalarKinds[2], scalarKinds[3],
			scalarKinds[4], scalarKinds[5], scalarKinds[6], scalarKinds[7],
			scalarKinds[8], scalarKinds[9]),
		gen.Identifier(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	).Map(func(vs []any) Metafield {
		return Metafield{Type: vs[0].(string), Key: vs[1].(string), Title: vs[2].(string)}
	})

	choice := gopter.CombineGens(
		gen.OneConstOf(MetafieldSelectDropdown, MetafieldRadioButtons, MetafieldCheckBoxes),
		gen.Identifier(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.SliceOfN(2, gen.Identifier()),
	).Map(func(vs []any) Metafield {
		options := make([]MetafieldOption, 0, 2)
		for _, v := range vs[3].([]string) {
			options = append(options, MetafieldOption{Value: v})
		}
		return Metafield{Type: vs[0].(string), Key: vs[1].(string), Title: vs[2].(string), Options: options}
	})

	if depth == 0 {
		return gen.OneGenOf(scalar, choice)
	}

	composite := gopter.CombineGens(
		gen.OneConstOf(MetafieldParent, MetafieldRepeater),
		gen.Identifier(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.SliceOfN(2, genMetafield(depth-1)),
	).Map(func(vs []any) Metafield {
		return Metafield{Type: vs[0].(string), Key: vs[1].(string), Title: vs[2].(string), Children: vs[3].([]Metafield)}
	})

	return gen.OneGenOf(scalar, choice, composite)
}

func TestValidateMetafieldsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("well-formed trees validate", prop.ForAll(
		func(fields []Metafield) bool {
			return ValidateMetafields(fields) == nil
		},
		gen.SliceOfN(3, genMetafield(2)),
	))

	properties.Property("blanking any key fails validation", prop.ForAll(
		func(field Metafield) bool {
			field.Key = ""
			return ValidateMetafields([]Metafield{field}) != nil
		},
		genMetafield(1),
	))

	properties.Property("unknown kinds fail validation", prop.ForAll(
		func(field Metafield, kind string) bool {
			field.Type = kind
			return ValidateMetafields([]Metafield{field}) != nil
		},
		genMetafield(0),
		gen.Identifier().SuchThat(func(s string) bool { return !knownKind(s) }),
	))

	properties.TestingRun(t)
}
