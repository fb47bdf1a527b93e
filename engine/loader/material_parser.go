package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// materialParserImpl is the implementation of the MaterialParser interface.
type materialParserImpl struct {
	resolver TextureResolver
	reporter Reporter
}

// MaterialParser resolves glTF material JSON into material.Model values.
// Every field starts from its glTF default and is overridden only by keys that are present.
type MaterialParser interface {
	// Parse resolves one material object. A material with the KHR_materials_pbrSpecularGlossiness
	// extension gets the specular-glossiness workflow and its pbrMetallicRoughness block is ignored;
	// every other material gets the metallic-roughness workflow, defaulted when the block is absent.
	// Unrecognized keys are reported and otherwise ignored.
	//
	// Parameters:
	//   - index: the material index, used for the generated name and for error context
	//   - raw: the material JSON object
	//
	// Returns:
	//   - *material.Model: the resolved model
	//   - error: an error wrapping ErrMalformedMaterial (and ErrIndexOutOfRange when a texture index is the cause)
	Parse(index int, raw json.RawMessage) (*material.Model, error)

	// ParseDefault returns the implicit material of primitives that reference none.
	//
	// Returns:
	//   - *material.Model: a fully defaulted model named material.DefaultMaterialName
	ParseDefault() *material.Model
}

var _ MaterialParser = &materialParserImpl{}

// NewMaterialParser creates a parser resolving texture slots through resolver.
//
// Parameters:
//   - resolver: the texture resolver of the session
//   - options: variadic list of MaterialParserBuilderOption functions
//
// Returns:
//   - MaterialParser: the parser
func NewMaterialParser(resolver TextureResolver, options ...MaterialParserBuilderOption) MaterialParser {
	p := &materialParserImpl{resolver: resolver}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *materialParserImpl) ParseDefault() *material.Model {
	return material.NewDefault()
}

func (p *materialParserImpl) Parse(index int, raw json.RawMessage) (*material.Model, error) {
	subject := fmt.Sprintf("material %d", index)

	var def gltfMaterial
	if _, err := p.decodeScope(raw, ScopeMaterial, subject, materialKeys, &def); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedMaterial, subject, err)
	}

	name := fmt.Sprintf("Material_%d", index)
	if def.Name != nil {
		name = *def.Name
	}

	for _, ext := range unknownKeys(def.Extensions, keySet(extSpecularGlossiness)) {
		p.reporter.report(ScopeMaterialExtension, subject, []string{ext})
	}

	// Texture references are only checked here; nothing enters the image cache until the
	// whole material is known to be valid.
	var (
		refs     []textureRef
		workflow material.Workflow
		err      error
	)
	if sg, ok := def.Extensions[extSpecularGlossiness]; ok {
		workflow, err = p.parseSpecularGlossiness(subject, sg, &refs)
	} else {
		workflow, err = p.parseMetallicRoughness(subject, def.PbrMetallicRoughness, &refs)
	}
	if err != nil {
		return nil, err
	}

	emissive := mgl32.Vec4{0, 0, 0, 1}
	if def.EmissiveFactor != nil {
		if emissive, err = common.ColorFromSlice(def.EmissiveFactor); err != nil {
			return nil, fmt.Errorf("%w: %s: emissiveFactor: %w", ErrMalformedMaterial, subject, err)
		}
	}
	for _, slot := range []struct {
		kind material.SlotKind
		info *gltfTextureInfo
	}{
		{material.SlotEmissive, def.EmissiveTexture},
		{material.SlotNormal, def.NormalTexture},
		{material.SlotOcclusion, def.OcclusionTexture},
	} {
		if err := p.checkSlot(subject, slot.kind, slot.info, &refs); err != nil {
			return nil, err
		}
	}

	alphaMode := gltf.AlphaOpaque
	if def.AlphaMode != nil {
		if alphaMode, err = material.ParseAlphaMode(*def.AlphaMode); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedMaterial, subject, err)
		}
	}

	bound, err := p.bindSlots(subject, refs)
	if err != nil {
		return nil, err
	}
	switch w := workflow.(type) {
	case *material.MetallicRoughness:
		w.BaseColorTexture = bound[material.SlotBaseColor]
		w.MetallicRoughnessTexture = bound[material.SlotMetallicRoughness]
	case *material.SpecularGlossiness:
		w.SpecularGlossinessTexture = bound[material.SlotSpecularGlossiness]
		w.DiffuseTexture = bound[material.SlotDiffuse]
	}

	return material.New(
		material.WithName(name),
		material.WithWorkflow(workflow),
		material.WithEmissive(emissive, bound[material.SlotEmissive]),
		material.WithNormalTexture(bound[material.SlotNormal]),
		material.WithOcclusionTexture(bound[material.SlotOcclusion]),
		material.WithAlpha(alphaMode, common.Deref(def.AlphaCutoff, 0.5)),
		material.WithDoubleSided(common.Deref(def.DoubleSided, false)),
	), nil
}

func (p *materialParserImpl) parseMetallicRoughness(subject string, raw json.RawMessage, refs *[]textureRef) (*material.MetallicRoughness, error) {
	mr := material.NewMetallicRoughness()

	var def gltfPbrMetallicRoughness
	present, err := p.decodeScope(raw, ScopePBR, subject, pbrKeys, &def)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: pbrMetallicRoughness: %w", ErrMalformedMaterial, subject, err)
	}
	if !present {
		return mr, nil
	}

	if def.BaseColorFactor != nil {
		if mr.BaseColorFactor, err = common.ColorFromSlice(def.BaseColorFactor); err != nil {
			return nil, fmt.Errorf("%w: %s: baseColorFactor: %w", ErrMalformedMaterial, subject, err)
		}
	}
	mr.MetallicFactor = common.Deref(def.MetallicFactor, mr.MetallicFactor)
	mr.RoughnessFactor = common.Deref(def.RoughnessFactor, mr.RoughnessFactor)

	if err := p.checkSlot(subject, material.SlotBaseColor, def.BaseColorTexture, refs); err != nil {
		return nil, err
	}
	if err := p.checkSlot(subject, material.SlotMetallicRoughness, def.MetallicRoughnessTexture, refs); err != nil {
		return nil, err
	}
	return mr, nil
}

func (p *materialParserImpl) parseSpecularGlossiness(subject string, raw json.RawMessage, refs *[]textureRef) (*material.SpecularGlossiness, error) {
	sg := material.NewSpecularGlossiness()

	var def gltfSpecularGlossiness
	present, err := p.decodeScope(raw, ScopeSpecularGlossiness, subject, specularGlossinessKeys, &def)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %w", ErrMalformedMaterial, subject, extSpecularGlossiness, err)
	}
	if !present {
		return sg, nil
	}

	if def.DiffuseFactor != nil {
		if sg.DiffuseFactor, err = common.ColorFromSlice(def.DiffuseFactor); err != nil {
			return nil, fmt.Errorf("%w: %s: diffuseFactor: %w", ErrMalformedMaterial, subject, err)
		}
	}
	if def.SpecularFactor != nil {
		if sg.SpecularFactor, err = common.ColorFromSlice(def.SpecularFactor); err != nil {
			return nil, fmt.Errorf("%w: %s: specularFactor: %w", ErrMalformedMaterial, subject, err)
		}
	}
	sg.GlossinessFactor = common.Deref(def.GlossinessFactor, sg.GlossinessFactor)

	if err := p.checkSlot(subject, material.SlotSpecularGlossiness, def.SpecularGlossinessTexture, refs); err != nil {
		return nil, err
	}
	if err := p.checkSlot(subject, material.SlotDiffuse, def.DiffuseTexture, refs); err != nil {
		return nil, err
	}
	return sg, nil
}

// textureRef is a checked texture-info object waiting to be bound.
type textureRef struct {
	slot     material.SlotKind
	index    int
	texCoord int
}

// checkSlot validates one texture-info object and appends it to refs. A nil info is skipped.
func (p *materialParserImpl) checkSlot(subject string, slot material.SlotKind, info *gltfTextureInfo, refs *[]textureRef) error {
	if info == nil {
		return nil
	}
	if info.Index == nil {
		return fmt.Errorf("%w: %s: %s has no index", ErrMalformedMaterial, subject, slot)
	}
	texCoord := common.Deref(info.TexCoord, 0)
	if texCoord < 0 {
		return fmt.Errorf("%w: %s: %s texCoord %d", ErrMalformedMaterial, subject, slot, texCoord)
	}
	if err := p.resolver.Validate(*info.Index); err != nil {
		return fmt.Errorf("%w: %s: %s: %w", ErrMalformedMaterial, subject, slot, err)
	}

	*refs = append(*refs, textureRef{slot: slot, index: *info.Index, texCoord: texCoord})
	return nil
}

// bindSlots resolves checked references into bindings, keyed by slot.
func (p *materialParserImpl) bindSlots(subject string, refs []textureRef) (map[material.SlotKind]*texture.Binding, error) {
	bound := make(map[material.SlotKind]*texture.Binding, len(refs))
	for _, ref := range refs {
		b, err := p.resolver.Resolve(ref.index, ref.texCoord)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %w", ErrMalformedMaterial, subject, ref.slot, err)
		}
		bound[ref.slot] = b
	}
	return bound, nil
}

// decodeScope reports the unrecognized keys of one JSON object and decodes it into dst.
// An absent or null object leaves dst untouched and returns false.
func (p *materialParserImpl) decodeScope(raw json.RawMessage, scope, subject string, known map[string]struct{}, dst any) (bool, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return false, err
	}
	p.reporter.report(scope, subject, unknownKeys(keys, known))

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}
