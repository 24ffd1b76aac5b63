package classfile

// Opcodes.
const (
	OpNop             Opcode = 0x00
	OpAconstNull      Opcode = 0x01
	OpIconstM1        Opcode = 0x02
	OpIconst0         Opcode = 0x03
	OpIconst1         Opcode = 0x04
	OpIconst2         Opcode = 0x05
	OpIconst3         Opcode = 0x06
	OpIconst4         Opcode = 0x07
	OpIconst5         Opcode = 0x08
	OpLconst0         Opcode = 0x09
	OpLconst1         Opcode = 0x0a
	OpFconst0         Opcode = 0x0b
	OpFconst1         Opcode = 0x0c
	OpFconst2         Opcode = 0x0d
	OpDconst0         Opcode = 0x0e
	OpDconst1         Opcode = 0x0f
	OpBipush          Opcode = 0x10
	OpSipush          Opcode = 0x11
	OpLdc             Opcode = 0x12
	OpLdcW            Opcode = 0x13
	OpLdc2W           Opcode = 0x14
	OpIload           Opcode = 0x15
	OpLload           Opcode = 0x16
	OpFload           Opcode = 0x17
	OpDload           Opcode = 0x18
	OpAload           Opcode = 0x19
	OpIload0          Opcode = 0x1a
	OpIload1          Opcode = 0x1b
	OpIload2          Opcode = 0x1c
	OpIload3          Opcode = 0x1d
	OpLload0          Opcode = 0x1e
	OpLload1          Opcode = 0x1f
	OpLload2          Opcode = 0x20
	OpLload3          Opcode = 0x21
	OpFload0          Opcode = 0x22
	OpFload1          Opcode = 0x23
	OpFload2          Opcode = 0x24
	OpFload3          Opcode = 0x25
	OpDload0          Opcode = 0x26
	OpDload1          Opcode = 0x27
	OpDload2          Opcode = 0x28
	OpDload3          Opcode = 0x29
	OpAload0          Opcode = 0x2a
	OpAload1          Opcode = 0x2b
	OpAload2          Opcode = 0x2c
	OpAload3          Opcode = 0x2d
	OpIaload          Opcode = 0x2e
	OpLaload          Opcode = 0x2f
	OpFaload          Opcode = 0x30
	OpDaload          Opcode = 0x31
	OpAaload          Opcode = 0x32
	OpBaload          Opcode = 0x33
	OpCaload          Opcode = 0x34
	OpSaload          Opcode = 0x35
	OpIstore          Opcode = 0x36
	OpLstore          Opcode = 0x37
	OpFstore          Opcode = 0x38
	OpDstore          Opcode = 0x39
	OpAstore          Opcode = 0x3a
	OpIstore0         Opcode = 0x3b
	OpIstore1         Opcode = 0x3c
	OpIstore2         Opcode = 0x3d
	OpIstore3         Opcode = 0x3e
	OpLstore0         Opcode = 0x3f
	OpLstore1         Opcode = 0x40
	OpLstore2         Opcode = 0x41
	OpLstore3         Opcode = 0x42
	OpFstore0         Opcode = 0x43
	OpFstore1         Opcode = 0x44
	OpFstore2         Opcode = 0x45
	OpFstore3         Opcode = 0x46
	OpDstore0         Opcode = 0x47
	OpDstore1         Opcode = 0x48
	OpDstore2         Opcode = 0x49
	OpDstore3         Opcode = 0x4a
	OpAstore0         Opcode = 0x4b
	OpAstore1         Opcode = 0x4c
	OpAstore2         Opcode = 0x4d
	OpAstore3         Opcode = 0x4e
	OpIastore         Opcode = 0x4f
	OpLastore         Opcode = 0x50
	OpFastore         Opcode = 0x51
	OpDastore         Opcode = 0x52
	OpAastore         Opcode = 0x53
	OpBastore         Opcode = 0x54
	OpCastore         Opcode = 0x55
	OpSastore         Opcode = 0x56
	OpPop             Opcode = 0x57
	OpPop2            Opcode = 0x58
	OpDup             Opcode = 0x59
	OpDupX1           Opcode = 0x5a
	OpDupX2           Opcode = 0x5b
	OpDup2            Opcode = 0x5c
	OpDup2X1          Opcode = 0x5d
	OpDup2X2          Opcode = 0x5e
	OpSwap            Opcode = 0x5f
	OpIadd            Opcode = 0x60
	OpLadd            Opcode = 0x61
	OpFadd            Opcode = 0x62
	OpDadd            Opcode = 0x63
	OpIsub            Opcode = 0x64
	OpLsub            Opcode = 0x65
	OpFsub            Opcode = 0x66
	OpDsub            Opcode = 0x67
	OpImul            Opcode = 0x68
	OpLmul            Opcode = 0x69
	OpFmul            Opcode = 0x6a
	OpDmul            Opcode = 0x6b
	OpIdiv            Opcode = 0x6c
	OpLdiv            Opcode = 0x6d
	OpFdiv            Opcode = 0x6e
	OpDdiv            Opcode = 0x6f
	OpIrem            Opcode = 0x70
	OpLrem            Opcode = 0x71
	OpFrem            Opcode = 0x72
	OpDrem            Opcode = 0x73
	OpIneg            Opcode = 0x74
	OpLneg            Opcode = 0x75
	OpFneg            Opcode = 0x76
	OpDneg            Opcode = 0x77
	OpIshl            Opcode = 0x78
	OpLshl            Opcode = 0x79
	OpIshr            Opcode = 0x7a
	OpLshr            Opcode = 0x7b
	OpIushr           Opcode = 0x7c
	OpLushr           Opcode = 0x7d
	OpIand            Opcode = 0x7e
	OpLand            Opcode = 0x7f
	OpIor             Opcode = 0x80
	OpLor             Opcode = 0x81
	OpIxor            Opcode = 0x82
	OpLxor            Opcode = 0x83
	OpIinc            Opcode = 0x84
	OpI2l             Opcode = 0x85
	OpI2f             Opcode = 0x86
	OpI2d             Opcode = 0x87
	OpL2i             Opcode = 0x88
	OpL2f             Opcode = 0x89
	OpL2d             Opcode = 0x8a
	OpF2i             Opcode = 0x8b
	OpF2l             Opcode = 0x8c
	OpF2d             Opcode = 0x8d
	OpD2i             Opcode = 0x8e
	OpD2l             Opcode = 0x8f
	OpD2f             Opcode = 0x90
	OpI2b             Opcode = 0x91
	OpI2c             Opcode = 0x92
	OpI2s             Opcode = 0x93
	OpLcmp            Opcode = 0x94
	OpFcmpl           Opcode = 0x95
	OpFcmpg           Opcode = 0x96
	OpDcmpl           Opcode = 0x97
	OpDcmpg           Opcode = 0x98
	OpIfeq            Opcode = 0x99
	OpIfne            Opcode = 0x9a
	OpIflt            Opcode = 0x9b
	OpIfge            Opcode = 0x9c
	OpIfgt            Opcode = 0x9d
	OpIfle            Opcode = 0x9e
	OpIfIcmpeq        Opcode = 0x9f
	OpIfIcmpne        Opcode = 0xa0
	OpIfIcmplt        Opcode = 0xa1
	OpIfIcmpge        Opcode = 0xa2
	OpIfIcmpgt        Opcode = 0xa3
	OpIfIcmple        Opcode = 0xa4
	OpIfAcmpeq        Opcode = 0xa5
	OpIfAcmpne        Opcode = 0xa6
	OpGoto            Opcode = 0xa7
	OpJsr             Opcode = 0xa8
	OpRet             Opcode = 0xa9
	OpTableswitch     Opcode = 0xaa
	OpLookupswitch    Opcode = 0xab
	OpIreturn         Opcode = 0xac
	OpLreturn         Opcode = 0xad
	OpFreturn         Opcode = 0xae
	OpDreturn         Opcode = 0xaf
	OpAreturn         Opcode = 0xb0
	OpReturn          Opcode = 0xb1
	OpGetstatic       Opcode = 0xb2
	OpPutstatic       Opcode = 0xb3
	OpGetfield        Opcode = 0xb4
	OpPutfield        Opcode = 0xb5
	OpInvokevirtual   Opcode = 0xb6
	OpInvokespecial   Opcode = 0xb7
	OpInvokestatic    Opcode = 0xb8
	OpInvokeinterface Opcode = 0xb9
	OpInvokedynamic   Opcode = 0xba
	OpNew             Opcode = 0xbb
	OpNewarray        Opcode = 0xbc
	OpAnewarray       Opcode = 0xbd
	OpArraylength     Opcode = 0xbe
	OpAthrow          Opcode = 0xbf
	OpCheckcast       Opcode = 0xc0
	OpInstanceof      Opcode = 0xc1
	OpMonitorenter    Opcode = 0xc2
	OpMonitorexit     Opcode = 0xc3
	OpWide            Opcode = 0xc4
	OpMultianewarray  Opcode = 0xc5
	OpIfnull          Opcode = 0xc6
	OpIfnonnull       Opcode = 0xc7
	OpGotoW           Opcode = 0xc8
	OpJsrW            Opcode = 0xc9
	OpBreakpoint      Opcode = 0xca
	OpImpdep1         Opcode = 0xfe
	OpImpdep2         Opcode = 0xff
)

var opcodeTable = [256]opcodeInfo{
	OpNop:             {name: "nop", shape: shapeNone},
	OpAconstNull:      {name: "aconst_null", shape: shapeNone},
	OpIconstM1:        {name: "iconst_m1", shape: shapeNone},
	OpIconst0:         {name: "iconst_0", shape: shapeNone},
	OpIconst1:         {name: "iconst_1", shape: shapeNone},
	OpIconst2:         {name: "iconst_2", shape: shapeNone},
	OpIconst3:         {name: "iconst_3", shape: shapeNone},
	OpIconst4:         {name: "iconst_4", shape: shapeNone},
	OpIconst5:         {name: "iconst_5", shape: shapeNone},
	OpLconst0:         {name: "lconst_0", shape: shapeNone},
	OpLconst1:         {name: "lconst_1", shape: shapeNone},
	OpFconst0:         {name: "fconst_0", shape: shapeNone},
	OpFconst1:         {name: "fconst_1", shape: shapeNone},
	OpFconst2:         {name: "fconst_2", shape: shapeNone},
	OpDconst0:         {name: "dconst_0", shape: shapeNone},
	OpDconst1:         {name: "dconst_1", shape: shapeNone},
	OpBipush:          {name: "bipush", shape: shapePushByte},
	OpSipush:          {name: "sipush", shape: shapePushShort},
	OpLdc:             {name: "ldc", shape: shapeConstNarrow},
	OpLdcW:            {name: "ldc_w", shape: shapeConst},
	OpLdc2W:           {name: "ldc2_w", shape: shapeConst},
	OpIload:           {name: "iload", shape: shapeLocal},
	OpLload:           {name: "lload", shape: shapeLocal},
	OpFload:           {name: "fload", shape: shapeLocal},
	OpDload:           {name: "dload", shape: shapeLocal},
	OpAload:           {name: "aload", shape: shapeLocal},
	OpIload0:          {name: "iload_0", shape: shapeImplicitLocal, slot: 0},
	OpIload1:          {name: "iload_1", shape: shapeImplicitLocal, slot: 1},
	OpIload2:          {name: "iload_2", shape: shapeImplicitLocal, slot: 2},
	OpIload3:          {name: "iload_3", shape: shapeImplicitLocal, slot: 3},
	OpLload0:          {name: "lload_0", shape: shapeImplicitLocal, slot: 0},
	OpLload1:          {name: "lload_1", shape: shapeImplicitLocal, slot: 1},
	OpLload2:          {name: "lload_2", shape: shapeImplicitLocal, slot: 2},
	OpLload3:          {name: "lload_3", shape: shapeImplicitLocal, slot: 3},
	OpFload0:          {name: "fload_0", shape: shapeImplicitLocal, slot: 0},
	OpFload1:          {name: "fload_1", shape: shapeImplicitLocal, slot: 1},
	OpFload2:          {name: "fload_2", shape: shapeImplicitLocal, slot: 2},
	OpFload3:          {name: "fload_3", shape: shapeImplicitLocal, slot: 3},
	OpDload0:          {name: "dload_0", shape: shapeImplicitLocal, slot: 0},
	OpDload1:          {name: "dload_1", shape: shapeImplicitLocal, slot: 1},
	OpDload2:          {name: "dload_2", shape: shapeImplicitLocal, slot: 2},
	OpDload3:          {name: "dload_3", shape: shapeImplicitLocal, slot: 3},
	OpAload0:          {name: "aload_0", shape: shapeImplicitLocal, slot: 0},
	OpAload1:          {name: "aload_1", shape: shapeImplicitLocal, slot: 1},
	OpAload2:          {name: "aload_2", shape: shapeImplicitLocal, slot: 2},
	OpAload3:          {name: "aload_3", shape: shapeImplicitLocal, slot: 3},
	OpIaload:          {name: "iaload", shape: shapeNone},
	OpLaload:          {name: "laload", shape: shapeNone},
	OpFaload:          {name: "faload", shape: shapeNone},
	OpDaload:          {name: "daload", shape: shapeNone},
	OpAaload:          {name: "aaload", shape: shapeNone},
	OpBaload:          {name: "baload", shape: shapeNone},
	OpCaload:          {name: "caload", shape: shapeNone},
	OpSaload:          {name: "saload", shape: shapeNone},
	OpIstore:          {name: "istore", shape: shapeLocal},
	OpLstore:          {name: "lstore", shape: shapeLocal},
	OpFstore:          {name: "fstore", shape: shapeLocal},
	OpDstore:          {name: "dstore", shape: shapeLocal},
	OpAstore:          {name: "astore", shape: shapeLocal},
	OpIstore0:         {name: "istore_0", shape: shapeImplicitLocal, slot: 0},
	OpIstore1:         {name: "istore_1", shape: shapeImplicitLocal, slot: 1},
	OpIstore2:         {name: "istore_2", shape: shapeImplicitLocal, slot: 2},
	OpIstore3:         {name: "istore_3", shape: shapeImplicitLocal, slot: 3},
	OpLstore0:         {name: "lstore_0", shape: shapeImplicitLocal, slot: 0},
	OpLstore1:         {name: "lstore_1", shape: shapeImplicitLocal, slot: 1},
	OpLstore2:         {name: "lstore_2", shape: shapeImplicitLocal, slot: 2},
	OpLstore3:         {name: "lstore_3", shape: shapeImplicitLocal, slot: 3},
	OpFstore0:         {name: "fstore_0", shape: shapeImplicitLocal, slot: 0},
	OpFstore1:         {name: "fstore_1", shape: shapeImplicitLocal, slot: 1},
	OpFstore2:         {name: "fstore_2", shape: shapeImplicitLocal, slot: 2},
	OpFstore3:         {name: "fstore_3", shape: shapeImplicitLocal, slot: 3},
	OpDstore0:         {name: "dstore_0", shape: shapeImplicitLocal, slot: 0},
	OpDstore1:         {name: "dstore_1", shape: shapeImplicitLocal, slot: 1},
	OpDstore2:         {name: "dstore_2", shape: shapeImplicitLocal, slot: 2},
	OpDstore3:         {name: "dstore_3", shape: shapeImplicitLocal, slot: 3},
	OpAstore0:         {name: "astore_0", shape: shapeImplicitLocal, slot: 0},
	OpAstore1:         {name: "astore_1", shape: shapeImplicitLocal, slot: 1},
	OpAstore2:         {name: "astore_2", shape: shapeImplicitLocal, slot: 2},
	OpAstore3:         {name: "astore_3", shape: shapeImplicitLocal, slot: 3},
	OpIastore:         {name: "iastore", shape: shapeNone},
	OpLastore:         {name: "lastore", shape: shapeNone},
	OpFastore:         {name: "fastore", shape: shapeNone},
	OpDastore:         {name: "dastore", shape: shapeNone},
	OpAastore:         {name: "aastore", shape: shapeNone},
	OpBastore:         {name: "bastore", shape: shapeNone},
	OpCastore:         {name: "castore", shape: shapeNone},
	OpSastore:         {name: "sastore", shape: shapeNone},
	OpPop:             {name: "pop", shape: shapeNone},
	OpPop2:            {name: "pop2", shape: shapeNone},
	OpDup:             {name: "dup", shape: shapeNone},
	OpDupX1:           {name: "dup_x1", shape: shapeNone},
	OpDupX2:           {name: "dup_x2", shape: shapeNone},
	OpDup2:            {name: "dup2", shape: shapeNone},
	OpDup2X1:          {name: "dup2_x1", shape: shapeNone},
	OpDup2X2:          {name: "dup2_x2", shape: shapeNone},
	OpSwap:            {name: "swap", shape: shapeNone},
	OpIadd:            {name: "iadd", shape: shapeNone},
	OpLadd:            {name: "ladd", shape: shapeNone},
	OpFadd:            {name: "fadd", shape: shapeNone},
	OpDadd:            {name: "dadd", shape: shapeNone},
	OpIsub:            {name: "isub", shape: shapeNone},
	OpLsub:            {name: "lsub", shape: shapeNone},
	OpFsub:            {name: "fsub", shape: shapeNone},
	OpDsub:            {name: "dsub", shape: shapeNone},
	OpImul:            {name: "imul", shape: shapeNone},
	OpLmul:            {name: "lmul", shape: shapeNone},
	OpFmul:            {name: "fmul", shape: shapeNone},
	OpDmul:            {name: "dmul", shape: shapeNone},
	OpIdiv:            {name: "idiv", shape: shapeNone},
	OpLdiv:            {name: "ldiv", shape: shapeNone},
	OpFdiv:            {name: "fdiv", shape: shapeNone},
	OpDdiv:            {name: "ddiv", shape: shapeNone},
	OpIrem:            {name: "irem", shape: shapeNone},
	OpLrem:            {name: "lrem", shape: shapeNone},
	OpFrem:            {name: "frem", shape: shapeNone},
	OpDrem:            {name: "drem", shape: shapeNone},
	OpIneg:            {name: "ineg", shape: shapeNone},
	OpLneg:            {name: "lneg", shape: shapeNone},
	OpFneg:            {name: "fneg", shape: shapeNone},
	OpDneg:            {name: "dneg", shape: shapeNone},
	OpIshl:            {name: "ishl", shape: shapeNone},
	OpLshl:            {name: "lshl", shape: shapeNone},
	OpIshr:            {name: "ishr", shape: shapeNone},
	OpLshr:            {name: "lshr", shape: shapeNone},
	OpIushr:           {name: "iushr", shape: shapeNone},
	OpLushr:           {name: "lushr", shape: shapeNone},
	OpIand:            {name: "iand", shape: shapeNone},
	OpLand:            {name: "land", shape: shapeNone},
	OpIor:             {name: "ior", shape: shapeNone},
	OpLor:             {name: "lor", shape: shapeNone},
	OpIxor:            {name: "ixor", shape: shapeNone},
	OpLxor:            {name: "lxor", shape: shapeNone},
	OpIinc:            {name: "iinc", shape: shapeIinc},
	OpI2l:             {name: "i2l", shape: shapeNone},
	OpI2f:             {name: "i2f", shape: shapeNone},
	OpI2d:             {name: "i2d", shape: shapeNone},
	OpL2i:             {name: "l2i", shape: shapeNone},
	OpL2f:             {name: "l2f", shape: shapeNone},
	OpL2d:             {name: "l2d", shape: shapeNone},
	OpF2i:             {name: "f2i", shape: shapeNone},
	OpF2l:             {name: "f2l", shape: shapeNone},
	OpF2d:             {name: "f2d", shape: shapeNone},
	OpD2i:             {name: "d2i", shape: shapeNone},
	OpD2l:             {name: "d2l", shape: shapeNone},
	OpD2f:             {name: "d2f", shape: shapeNone},
	OpI2b:             {name: "i2b", shape: shapeNone},
	OpI2c:             {name: "i2c", shape: shapeNone},
	OpI2s:             {name: "i2s", shape: shapeNone},
	OpLcmp:            {name: "lcmp", shape: shapeNone},
	OpFcmpl:           {name: "fcmpl", shape: shapeNone},
	OpFcmpg:           {name: "fcmpg", shape: shapeNone},
	OpDcmpl:           {name: "dcmpl", shape: shapeNone},
	OpDcmpg:           {name: "dcmpg", shape: shapeNone},
	OpIfeq:            {name: "ifeq", shape: shapeBranch},
	OpIfne:            {name: "ifne", shape: shapeBranch},
	OpIflt:            {name: "iflt", shape: shapeBranch},
	OpIfge:            {name: "ifge", shape: shapeBranch},
	OpIfgt:            {name: "ifgt", shape: shapeBranch},
	OpIfle:            {name: "ifle", shape: shapeBranch},
	OpIfIcmpeq:        {name: "if_icmpeq", shape: shapeBranch},
	OpIfIcmpne:        {name: "if_icmpne", shape: shapeBranch},
	OpIfIcmplt:        {name: "if_icmplt", shape: shapeBranch},
	OpIfIcmpge:        {name: "if_icmpge", shape: shapeBranch},
	OpIfIcmpgt:        {name: "if_icmpgt", shape: shapeBranch},
	OpIfIcmple:        {name: "if_icmple", shape: shapeBranch},
	OpIfAcmpeq:        {name: "if_acmpeq", shape: shapeBranch},
	OpIfAcmpne:        {name: "if_acmpne", shape: shapeBranch},
	OpGoto:            {name: "goto", shape: shapeBranch},
	OpJsr:             {name: "jsr", shape: shapeBranch},
	OpRet:             {name: "ret", shape: shapeLocal},
	OpTableswitch:     {name: "tableswitch", shape: shapeTableSwitch},
	OpLookupswitch:    {name: "lookupswitch", shape: shapeLookupSwitch},
	OpIreturn:         {name: "ireturn", shape: shapeNone},
	OpLreturn:         {name: "lreturn", shape: shapeNone},
	OpFreturn:         {name: "freturn", shape: shapeNone},
	OpDreturn:         {name: "dreturn", shape: shapeNone},
	OpAreturn:         {name: "areturn", shape: shapeNone},
	OpReturn:          {name: "return", shape: shapeNone},
	OpGetstatic:       {name: "getstatic", shape: shapeConst},
	OpPutstatic:       {name: "putstatic", shape: shapeConst},
	OpGetfield:        {name: "getfield", shape: shapeConst},
	OpPutfield:        {name: "putfield", shape: shapeConst},
	OpInvokevirtual:   {name: "invokevirtual", shape: shapeConst},
	OpInvokespecial:   {name: "invokespecial", shape: shapeConst},
	OpInvokestatic:    {name: "invokestatic", shape: shapeConst},
	OpInvokeinterface: {name: "invokeinterface", shape: shapeInvokeInterface},
	OpInvokedynamic:   {name: "invokedynamic", shape: shapeInvokeDynamic},
	OpNew:             {name: "new", shape: shapeConst},
	OpNewarray:        {name: "newarray", shape: shapeNewArray},
	OpAnewarray:       {name: "anewarray", shape: shapeConst},
	OpArraylength:     {name: "arraylength", shape: shapeNone},
	OpAthrow:          {name: "athrow", shape: shapeNone},
	OpCheckcast:       {name: "checkcast", shape: shapeConst},
	OpInstanceof:      {name: "instanceof", shape: shapeConst},
	OpMonitorenter:    {name: "monitorenter", shape: shapeNone},
	OpMonitorexit:     {name: "monitorexit", shape: shapeNone},
	OpWide:            {name: "wide", shape: shapeWide},
	OpMultianewarray:  {name: "multianewarray", shape: shapeMultiANewArray},
	OpIfnull:          {name: "ifnull", shape: shapeBranch},
	OpIfnonnull:       {name: "ifnonnull", shape: shapeBranch},
	OpGotoW:           {name: "goto_w", shape: shapeBranchWide},
	OpJsrW:            {name: "jsr_w", shape: shapeBranchWide},
	OpBreakpoint:      {name: "breakpoint", shape: shapeNone},
	OpImpdep1:         {name: "impdep1", shape: shapeNone},
	OpImpdep2:         {name: "impdep2", shape: shapeNone},
}
