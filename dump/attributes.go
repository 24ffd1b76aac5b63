package dump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/jclass/classfile"
)

func (p *Printer) VisitConstantValue(a *classfile.ConstantValueAttribute, depth int) {
	p.field(depth, "constantvalue_index", 2, p.ref(a.ValueIndex))
}

func (p *Printer) VisitCode(a *classfile.CodeAttribute, depth int) {
	p.field(depth, "max_stack", 2, a.MaxStack)
	p.field(depth, "max_locals", 2, a.MaxLocals)
	p.field(depth, "code_length", 4, a.CodeLength)
	if p.opts.Code {
		p.open(depth, "code")
		for i := range a.Instructions {
			in := &a.Instructions[i]
			p.seek(in.Offset)
			in.Accept(p, depth+1)
		}
		p.close(depth)
		p.seek(a.CodeOffset + len(a.Code))
	} else {
		p.field(depth, "code", len(a.Code), fmt.Sprintf("%d bytes", len(a.Code)))
	}

	p.field(depth, "exception_table_length", 2, len(a.ExceptionTable))
	for i, e := range a.ExceptionTable {
		p.open(depth, "exception_table[%d]", i)
		p.seek(e.Offset)
		p.field(depth+1, "start_pc", 2, e.StartPC)
		p.field(depth+1, "end_pc", 2, e.EndPC)
		p.field(depth+1, "handler_pc", 2, e.HandlerPC)
		catch := "any"
		if e.CatchType != 0 {
			catch = p.ref(e.CatchType)
		}
		p.field(depth+1, "catch_type", 2, catch)
		p.close(depth)
	}
	p.attributes(depth, a.Attributes)
}

func (p *Printer) VisitStackMapTable(a *classfile.StackMapTableAttribute, depth int) {
	p.field(depth, "number_of_entries", 2, len(a.Frames))
	offsets := a.Offsets()
	for i, f := range a.Frames {
		p.open(depth, "stack_map_frame[%d]@%d", i, offsets[i])
		p.seek(f.Offset())
		f.Accept(p, depth+1)
		p.close(depth)
	}
}

func (p *Printer) VisitExceptions(a *classfile.ExceptionsAttribute, depth int) {
	p.field(depth, "number_of_exceptions", 2, len(a.ExceptionIndexes))
	if len(a.ExceptionIndexes) == 0 {
		return
	}
	p.open(depth, "exception_index_table")
	for _, idx := range a.ExceptionIndexes {
		p.field(depth+1, "exception_index", 2, p.ref(idx))
	}
	p.close(depth)
}

func (p *Printer) VisitInnerClasses(a *classfile.InnerClassesAttribute, depth int) {
	p.field(depth, "number_of_classes", 2, len(a.Classes))
	for i, c := range a.Classes {
		p.open(depth, "classes[%d]", i)
		p.seek(c.Offset)
		p.field(depth+1, "inner_class_info_index", 2, p.ref(c.InnerClassInfoIndex))
		p.field(depth+1, "outer_class_info_index", 2, p.ref(c.OuterClassInfoIndex))
		p.field(depth+1, "inner_name_index", 2, p.ref(c.InnerNameIndex))
		p.field(depth+1, "inner_class_access_flags", 2, flagString(classfile.FlagsInnerClass, c.InnerClassAccessFlags))
		p.close(depth)
	}
}

func (p *Printer) VisitEnclosingMethod(a *classfile.EnclosingMethodAttribute, depth int) {
	p.field(depth, "class_index", 2, p.ref(a.ClassIndex))
	p.field(depth, "method_index", 2, p.ref(a.MethodIndex))
}

func (p *Printer) VisitSynthetic(*classfile.SyntheticAttribute, int) {}

func (p *Printer) VisitSignature(a *classfile.SignatureAttribute, depth int) {
	p.field(depth, "signature_index", 2, p.ref(a.SignatureIndex))
}

func (p *Printer) VisitSourceFile(a *classfile.SourceFileAttribute, depth int) {
	p.field(depth, "sourcefile_index", 2, p.ref(a.SourceFileIndex))
}

func (p *Printer) VisitSourceDebugExtension(a *classfile.SourceDebugExtensionAttribute, depth int) {
	p.field(depth, "debug_extension", len(a.DebugExtension), strconv.Quote(string(a.DebugExtension)))
}

func (p *Printer) VisitLineNumberTable(a *classfile.LineNumberTableAttribute, depth int) {
	p.field(depth, "line_number_table_length", 2, len(a.Lines))
	for i, l := range a.Lines {
		p.open(depth, "line_number_table[%d]", i)
		p.seek(l.Offset)
		p.field(depth+1, "start_pc", 2, l.StartPC)
		p.field(depth+1, "line_number", 2, l.LineNumber)
		p.close(depth)
	}
}

func (p *Printer) VisitLocalVariableTable(a *classfile.LocalVariableTableAttribute, depth int) {
	p.field(depth, "local_variable_table_length", 2, len(a.Variables))
	for i, v := range a.Variables {
		p.open(depth, "local_variable_table[%d]", i)
		p.seek(v.Offset)
		p.field(depth+1, "start_pc", 2, v.StartPC)
		p.field(depth+1, "length", 2, v.Length)
		p.field(depth+1, "name_index", 2, p.ref(v.NameIndex))
		p.field(depth+1, "descriptor_index", 2, p.ref(v.DescriptorIndex))
		p.field(depth+1, "index", 2, v.Index)
		p.close(depth)
	}
}

func (p *Printer) VisitLocalVariableTypeTable(a *classfile.LocalVariableTypeTableAttribute, depth int) {
	p.field(depth, "local_variable_type_table_length", 2, len(a.Variables))
	for i, v := range a.Variables {
		p.open(depth, "local_variable_type_table[%d]", i)
		p.seek(v.Offset)
		p.field(depth+1, "start_pc", 2, v.StartPC)
		p.field(depth+1, "length", 2, v.Length)
		p.field(depth+1, "name_index", 2, p.ref(v.NameIndex))
		p.field(depth+1, "signature_index", 2, p.ref(v.SignatureIndex))
		p.field(depth+1, "index", 2, v.Index)
		p.close(depth)
	}
}

func (p *Printer) VisitDeprecated(*classfile.DeprecatedAttribute, int) {}

func (p *Printer) VisitRuntimeVisibleAnnotations(a *classfile.RuntimeVisibleAnnotationsAttribute, depth int) {
	p.annotations(depth, a.Annotations)
}

func (p *Printer) VisitRuntimeInvisibleAnnotations(a *classfile.RuntimeInvisibleAnnotationsAttribute, depth int) {
	p.annotations(depth, a.Annotations)
}

func (p *Printer) VisitRuntimeVisibleParameterAnnotations(a *classfile.RuntimeVisibleParameterAnnotationsAttribute, depth int) {
	p.parameterAnnotations(depth, a.Parameters)
}

func (p *Printer) VisitRuntimeInvisibleParameterAnnotations(a *classfile.RuntimeInvisibleParameterAnnotationsAttribute, depth int) {
	p.parameterAnnotations(depth, a.Parameters)
}

func (p *Printer) VisitRuntimeVisibleTypeAnnotations(a *classfile.RuntimeVisibleTypeAnnotationsAttribute, depth int) {
	p.typeAnnotations(depth, a.Annotations)
}

func (p *Printer) VisitRuntimeInvisibleTypeAnnotations(a *classfile.RuntimeInvisibleTypeAnnotationsAttribute, depth int) {
	p.typeAnnotations(depth, a.Annotations)
}

func (p *Printer) VisitAnnotationDefault(a *classfile.AnnotationDefaultAttribute, depth int) {
	a.Value.Accept(p, depth)
}

func (p *Printer) VisitBootstrapMethods(a *classfile.BootstrapMethodsAttribute, depth int) {
	p.field(depth, "num_bootstrap_methods", 2, len(a.Methods))
	for i, m := range a.Methods {
		p.open(depth, "bootstrap_methods[%d]", i)
		p.seek(m.Offset)
		p.field(depth+1, "bootstrap_method_ref", 2, p.ref(m.MethodRefIndex))
		p.field(depth+1, "num_bootstrap_arguments", 2, len(m.Arguments))
		args := make([]string, len(m.Arguments))
		for j, arg := range m.Arguments {
			args[j] = "#" + strconv.Itoa(int(arg))
		}
		p.field(depth+1, "bootstrap_arguments", 2*len(m.Arguments), "["+strings.Join(args, ",")+"]")
		p.close(depth)
	}
}

func (p *Printer) VisitMethodParameters(a *classfile.MethodParametersAttribute, depth int) {
	p.field(depth, "parameters_count", 1, len(a.Parameters))
	for i, mp := range a.Parameters {
		p.open(depth, "parameters[%d]", i)
		p.seek(mp.Offset)
		p.field(depth+1, "name_index", 2, p.ref(mp.NameIndex))
		p.field(depth+1, "access_flags", 2, flagString(classfile.FlagsParameter, mp.AccessFlags))
		p.close(depth)
	}
}

func (p *Printer) VisitNestHost(a *classfile.NestHostAttribute, depth int) {
	p.field(depth, "host_class_index", 2, p.ref(a.HostClassIndex))
}

func (p *Printer) VisitNestMembers(a *classfile.NestMembersAttribute, depth int) {
	p.classTable(depth, "classes", a.Classes)
}

func (p *Printer) VisitPermittedSubclasses(a *classfile.PermittedSubclassesAttribute, depth int) {
	p.classTable(depth, "classes", a.Classes)
}

func (p *Printer) classTable(depth int, label string, classes []uint16) {
	p.field(depth, "number_of_"+label, 2, len(classes))
	for i, idx := range classes {
		p.field(depth, fmt.Sprintf("%s[%d]", label, i), 2, p.ref(idx))
	}
}

func (p *Printer) VisitRecord(a *classfile.RecordAttribute, depth int) {
	p.field(depth, "components_count", 2, len(a.Components))
	for i, c := range a.Components {
		p.open(depth, "components[%d]", i)
		p.seek(c.Offset)
		p.field(depth+1, "name_index", 2, p.ref(c.NameIndex))
		p.field(depth+1, "descriptor_index", 2, p.ref(c.DescriptorIndex))
		p.attributes(depth+1, c.Attributes)
		p.close(depth)
	}
}

func (p *Printer) VisitUnknown(a *classfile.UnknownAttribute, depth int) {
	meaning := fmt.Sprintf("%d bytes", len(a.Info))
	if a.Err != nil {
		meaning += ", " + a.Err.Error()
	}
	p.field(depth, "info", len(a.Info), meaning)
}
