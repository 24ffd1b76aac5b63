package classfile

// The visitor contracts below have one method per concrete record shape.
// Every record has an Accept method that calls the matching handler, and
// depth is passed through unchanged so that implementations can nest
// their output without shared state.

// ConstantVisitor handles constant pool entries.
type ConstantVisitor interface {
	VisitUtf8(c *ConstantUtf8, depth int)
	VisitInteger(c *ConstantInteger, depth int)
	VisitFloat(c *ConstantFloat, depth int)
	VisitLong(c *ConstantLong, depth int)
	VisitDouble(c *ConstantDouble, depth int)
	VisitClass(c *ConstantClass, depth int)
	VisitString(c *ConstantString, depth int)
	VisitFieldref(c *ConstantFieldref, depth int)
	VisitMethodref(c *ConstantMethodref, depth int)
	VisitInterfaceMethodref(c *ConstantInterfaceMethodref, depth int)
	VisitNameAndType(c *ConstantNameAndType, depth int)
	VisitMethodHandle(c *ConstantMethodHandle, depth int)
	VisitMethodType(c *ConstantMethodType, depth int)
	VisitDynamic(c *ConstantDynamic, depth int)
	VisitInvokeDynamic(c *ConstantInvokeDynamic, depth int)
	VisitModule(c *ConstantModule, depth int)
	VisitPackage(c *ConstantPackage, depth int)
}

// AttributeVisitor handles attributes.
type AttributeVisitor interface {
	VisitConstantValue(a *ConstantValueAttribute, depth int)
	VisitCode(a *CodeAttribute, depth int)
	VisitStackMapTable(a *StackMapTableAttribute, depth int)
	VisitExceptions(a *ExceptionsAttribute, depth int)
	VisitInnerClasses(a *InnerClassesAttribute, depth int)
	VisitEnclosingMethod(a *EnclosingMethodAttribute, depth int)
	VisitSynthetic(a *SyntheticAttribute, depth int)
	VisitSignature(a *SignatureAttribute, depth int)
	VisitSourceFile(a *SourceFileAttribute, depth int)
	VisitSourceDebugExtension(a *SourceDebugExtensionAttribute, depth int)
	VisitLineNumberTable(a *LineNumberTableAttribute, depth int)
	VisitLocalVariableTable(a *LocalVariableTableAttribute, depth int)
	VisitLocalVariableTypeTable(a *LocalVariableTypeTableAttribute, depth int)
	VisitDeprecated(a *DeprecatedAttribute, depth int)
	VisitRuntimeVisibleAnnotations(a *RuntimeVisibleAnnotationsAttribute, depth int)
	VisitRuntimeInvisibleAnnotations(a *RuntimeInvisibleAnnotationsAttribute, depth int)
	VisitRuntimeVisibleParameterAnnotations(a *RuntimeVisibleParameterAnnotationsAttribute, depth int)
	VisitRuntimeInvisibleParameterAnnotations(a *RuntimeInvisibleParameterAnnotationsAttribute, depth int)
	VisitRuntimeVisibleTypeAnnotations(a *RuntimeVisibleTypeAnnotationsAttribute, depth int)
	VisitRuntimeInvisibleTypeAnnotations(a *RuntimeInvisibleTypeAnnotationsAttribute, depth int)
	VisitAnnotationDefault(a *AnnotationDefaultAttribute, depth int)
	VisitBootstrapMethods(a *BootstrapMethodsAttribute, depth int)
	VisitMethodParameters(a *MethodParametersAttribute, depth int)
	VisitNestHost(a *NestHostAttribute, depth int)
	VisitNestMembers(a *NestMembersAttribute, depth int)
	VisitPermittedSubclasses(a *PermittedSubclassesAttribute, depth int)
	VisitRecord(a *RecordAttribute, depth int)
	VisitUnknown(a *UnknownAttribute, depth int)
}

// InstructionVisitor handles instructions, one method per operand shape.
type InstructionVisitor interface {
	VisitZeroOperand(in *Instruction, depth int)
	VisitImplicitLocal(in *Instruction, imm ImplicitLocalImm, depth int)
	VisitLocal(in *Instruction, imm LocalImm, depth int)
	VisitIinc(in *Instruction, imm IincImm, depth int)
	VisitPush(in *Instruction, imm PushImm, depth int)
	VisitConst(in *Instruction, imm ConstImm, depth int)
	VisitBranch(in *Instruction, imm BranchImm, depth int)
	VisitTableSwitch(in *Instruction, imm TableSwitchImm, depth int)
	VisitLookupSwitch(in *Instruction, imm LookupSwitchImm, depth int)
	VisitInvokeInterface(in *Instruction, imm InvokeInterfaceImm, depth int)
	VisitInvokeDynamicCall(in *Instruction, imm InvokeDynamicImm, depth int)
	VisitNewArray(in *Instruction, imm NewArrayImm, depth int)
	VisitMultiANewArray(in *Instruction, imm MultiANewArrayImm, depth int)
	VisitWide(in *Instruction, imm WideImm, depth int)
}

// FrameVisitor handles stack map frames.
type FrameVisitor interface {
	VisitSameFrame(f *SameFrame, depth int)
	VisitSameLocals1StackItemFrame(f *SameLocals1StackItemFrame, depth int)
	VisitSameLocals1StackItemFrameExtended(f *SameLocals1StackItemFrameExtended, depth int)
	VisitChopFrame(f *ChopFrame, depth int)
	VisitSameFrameExtended(f *SameFrameExtended, depth int)
	VisitAppendFrame(f *AppendFrame, depth int)
	VisitFullFrame(f *FullFrame, depth int)
}

// ElementValueVisitor handles annotation element values.
type ElementValueVisitor interface {
	VisitConstValue(v *ConstElementValue, depth int)
	VisitEnumValue(v *EnumElementValue, depth int)
	VisitClassValue(v *ClassElementValue, depth int)
	VisitAnnotationValue(v *AnnotationElementValue, depth int)
	VisitArrayValue(v *ArrayElementValue, depth int)
}

// TargetVisitor handles type annotation targets.
type TargetVisitor interface {
	VisitTypeParameterTarget(t *TypeParameterTarget, depth int)
	VisitSupertypeTarget(t *SupertypeTarget, depth int)
	VisitTypeParameterBoundTarget(t *TypeParameterBoundTarget, depth int)
	VisitEmptyTarget(t *EmptyTarget, depth int)
	VisitFormalParameterTarget(t *FormalParameterTarget, depth int)
	VisitThrowsTarget(t *ThrowsTarget, depth int)
	VisitLocalVarTarget(t *LocalVarTarget, depth int)
	VisitCatchTarget(t *CatchTarget, depth int)
	VisitOffsetTarget(t *OffsetTarget, depth int)
	VisitTypeArgumentTarget(t *TypeArgumentTarget, depth int)
}
