package dump

import (
	"fmt"

	"github.com/wippyai/jclass/classfile"
)

func (p *Printer) annotations(depth int, as []*classfile.Annotation) {
	p.field(depth, "num_annotations", 2, len(as))
	for i, a := range as {
		p.open(depth, "annotation[%d]", i)
		p.annotation(depth+1, a)
		p.close(depth)
	}
}

func (p *Printer) annotation(depth int, a *classfile.Annotation) {
	p.seek(a.Offset)
	p.field(depth, "type_index", 2, p.ref(a.TypeIndex))
	p.pairs(depth, a.Pairs)
}

func (p *Printer) pairs(depth int, pairs []classfile.ElementValuePair) {
	p.field(depth, "num_element_value_pairs", 2, len(pairs))
	for i, pair := range pairs {
		p.open(depth, "element_value_pairs[%d]", i)
		p.seek(pair.Offset)
		p.field(depth+1, "element_name_index", 2, p.ref(pair.NameIndex))
		pair.Value.Accept(p, depth+1)
		p.close(depth)
	}
}

func (p *Printer) parameterAnnotations(depth int, params []classfile.ParameterAnnotations) {
	p.field(depth, "num_parameters", 1, len(params))
	for i, pa := range params {
		p.open(depth, "parameter_annotations[%d]", i)
		p.seek(pa.Offset)
		p.annotations(depth+1, pa.Annotations)
		p.close(depth)
	}
}

func (p *Printer) typeAnnotations(depth int, as []*classfile.TypeAnnotation) {
	p.field(depth, "num_annotations", 2, len(as))
	for i, ta := range as {
		p.open(depth, "annotations[%d]", i)
		p.seek(ta.Offset)
		p.field(depth+1, "target_type", 1, fmt.Sprintf("0x%02X", ta.TargetType))
		p.open(depth+1, "target_info")
		ta.Target.Accept(p, depth+2)
		p.close(depth + 1)

		p.seek(ta.Path.Offset)
		p.open(depth+1, "target_path")
		p.field(depth+2, "path_length", 1, len(ta.Path.Entries))
		for j, e := range ta.Path.Entries {
			p.open(depth+2, "path[%d]", j)
			p.field(depth+3, "type_path_kind", 1, pathKindName(e.Kind))
			p.field(depth+3, "type_argument_index", 1, e.ArgumentIndex)
			p.close(depth + 2)
		}
		p.close(depth + 1)

		p.field(depth+1, "type_index", 2, p.ref(ta.TypeIndex))
		p.pairs(depth+1, ta.Pairs)
		p.close(depth)
	}
}

func pathKindName(kind uint8) string {
	switch kind {
	case classfile.PathArray:
		return "array"
	case classfile.PathNested:
		return "nested"
	case classfile.PathWildcardBound:
		return "wildcard bound"
	case classfile.PathTypeArgument:
		return "type argument"
	}
	return fmt.Sprintf("kind(%d)", kind)
}

func (p *Printer) valueTag(depth int, v classfile.ElementValue) {
	p.open(depth, "element_value")
	p.seek(v.Offset())
	p.field(depth+1, "tag", 1, string(rune(v.Tag())))
}

func (p *Printer) VisitConstValue(v *classfile.ConstElementValue, depth int) {
	p.valueTag(depth, v)
	meaning := p.ref(v.ConstValueIndex)
	if v.Value != nil {
		meaning = fmt.Sprintf("#%d: %v", v.ConstValueIndex, v.Value)
	}
	p.field(depth+1, "const_value_index", 2, meaning)
	p.close(depth)
}

func (p *Printer) VisitEnumValue(v *classfile.EnumElementValue, depth int) {
	p.valueTag(depth, v)
	p.field(depth+1, "type_name_index", 2, p.ref(v.TypeNameIndex))
	p.field(depth+1, "const_name_index", 2, p.ref(v.ConstNameIndex))
	p.close(depth)
}

func (p *Printer) VisitClassValue(v *classfile.ClassElementValue, depth int) {
	p.valueTag(depth, v)
	p.field(depth+1, "class_info_index", 2, p.ref(v.ClassInfoIndex))
	p.close(depth)
}

func (p *Printer) VisitAnnotationValue(v *classfile.AnnotationElementValue, depth int) {
	p.valueTag(depth, v)
	p.annotation(depth+1, v.Annotation)
	p.close(depth)
}

func (p *Printer) VisitArrayValue(v *classfile.ArrayElementValue, depth int) {
	p.valueTag(depth, v)
	p.field(depth+1, "num_values", 2, len(v.Values))
	for _, e := range v.Values {
		e.Accept(p, depth+1)
	}
	p.close(depth)
}

func (p *Printer) VisitTypeParameterTarget(t *classfile.TypeParameterTarget, depth int) {
	p.open(depth, "type_parameter_target")
	p.field(depth+1, "type_parameter_index", 1, t.TypeParameterIndex)
	p.close(depth)
}

func (p *Printer) VisitSupertypeTarget(t *classfile.SupertypeTarget, depth int) {
	p.open(depth, "supertype_target")
	meaning := fmt.Sprint(t.SupertypeIndex)
	if t.SupertypeIndex == 0xFFFF {
		meaning = "superclass"
	}
	p.field(depth+1, "supertype_index", 2, meaning)
	p.close(depth)
}

func (p *Printer) VisitTypeParameterBoundTarget(t *classfile.TypeParameterBoundTarget, depth int) {
	p.open(depth, "type_parameter_bound_target")
	p.field(depth+1, "type_parameter_index", 1, t.TypeParameterIndex)
	p.field(depth+1, "bound_index", 1, t.BoundIndex)
	p.close(depth)
}

func (p *Printer) VisitEmptyTarget(*classfile.EmptyTarget, int) {}

func (p *Printer) VisitFormalParameterTarget(t *classfile.FormalParameterTarget, depth int) {
	p.open(depth, "formal_parameter_target")
	p.field(depth+1, "formal_parameter_index", 1, t.FormalParameterIndex)
	p.close(depth)
}

func (p *Printer) VisitThrowsTarget(t *classfile.ThrowsTarget, depth int) {
	p.open(depth, "throws_target")
	p.field(depth+1, "throws_type_index", 2, t.ThrowsTypeIndex)
	p.close(depth)
}

func (p *Printer) VisitLocalVarTarget(t *classfile.LocalVarTarget, depth int) {
	p.open(depth, "localvar_target")
	p.field(depth+1, "table_length", 2, len(t.Table))
	for j, row := range t.Table {
		p.open(depth+1, "table[%d]", j)
		p.seek(row.Offset)
		p.field(depth+2, "start_pc", 2, row.StartPC)
		p.field(depth+2, "length", 2, row.Length)
		p.field(depth+2, "index", 2, row.Index)
		p.close(depth + 1)
	}
	p.close(depth)
}

func (p *Printer) VisitCatchTarget(t *classfile.CatchTarget, depth int) {
	p.open(depth, "catch_target")
	p.field(depth+1, "exception_table_index", 2, t.ExceptionTableIndex)
	p.close(depth)
}

func (p *Printer) VisitOffsetTarget(t *classfile.OffsetTarget, depth int) {
	p.open(depth, "offset_target")
	p.field(depth+1, "offset", 2, t.BytecodeOffset)
	p.close(depth)
}

func (p *Printer) VisitTypeArgumentTarget(t *classfile.TypeArgumentTarget, depth int) {
	p.open(depth, "type_argument_target")
	p.field(depth+1, "offset", 2, t.BytecodeOffset)
	p.field(depth+1, "type_argument_index", 1, t.TypeArgumentIndex)
	p.close(depth)
}
