package cfg

import "github.com/go-jclass/jclass/insn"

// ltThrowsOf returns the link-time exceptions an instruction can raise:
// the linkage/resolution errors the JVM specification assigns to any
// instruction that resolves a symbolic reference (spec.md §3 "Instruction"
// flags: lt_throws).
func ltThrowsOf(in insn.Instruction) []string {
	switch in.Op {
	case insn.Getstatic, insn.Putstatic, insn.Getfield, insn.Putfield:
		return []string{"java/lang/NoSuchFieldError", "java/lang/IncompatibleClassChangeError"}
	case insn.Invokevirtual, insn.Invokespecial, insn.Invokestatic, insn.Invokeinterface, insn.Invokedynamic:
		return []string{"java/lang/NoSuchMethodError", "java/lang/IncompatibleClassChangeError", "java/lang/AbstractMethodError"}
	case insn.New, insn.Anewarray, insn.Multianewarray, insn.Checkcast, insn.Instanceof:
		return []string{"java/lang/NoClassDefFoundError"}
	case insn.Ldc, insn.LdcW:
		return []string{"java/lang/NoClassDefFoundError"}
	default:
		return nil
	}
}

// rtThrowsOf returns the run-time exceptions an instruction can raise
// independent of successful linkage (spec.md §3 "Instruction" flags:
// rt_throws).
func rtThrowsOf(in insn.Instruction) []string {
	switch in.Op {
	case insn.Idiv, insn.Irem, insn.Ldiv, insn.Lrem:
		return []string{"java/lang/ArithmeticException"}
	case insn.Iaload, insn.Laload, insn.Faload, insn.Daload, insn.Aaload, insn.Baload, insn.Caload, insn.Saload,
		insn.Iastore, insn.Lastore, insn.Fastore, insn.Dastore, insn.Bastore, insn.Castore, insn.Sastore:
		return []string{"java/lang/ArrayIndexOutOfBoundsException", "java/lang/NullPointerException"}
	case insn.Newarray, insn.Anewarray, insn.Multianewarray:
		return []string{"java/lang/NegativeArraySizeException"}
	case insn.Checkcast:
		return []string{"java/lang/ClassCastException"}
	case insn.Aastore:
		return []string{"java/lang/ArrayIndexOutOfBoundsException", "java/lang/NullPointerException", "java/lang/ArrayStoreException"}
	case insn.Athrow:
		return []string{"java/lang/NullPointerException"}
	case insn.Getfield, insn.Putfield, insn.Invokevirtual, insn.Invokespecial, insn.Invokeinterface, insn.Arraylength, insn.Monitorenter, insn.Monitorexit:
		return []string{"java/lang/NullPointerException"}
	default:
		return nil
	}
}
