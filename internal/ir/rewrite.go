package ir

import "fmt"

// ReplaceAllUsesWith rebinds every operand slot that references old to repl.
func (fn *Function) ReplaceAllUsesWith(old, repl Value) {
	fn.checkOwned(old)
	fn.checkOwned(repl)
	if old.ID() == repl.ID() {
		panic(fmt.Sprintf("localopts: cannot replace %s with itself", old.Ref()))
	}

	ob := old.base()
	for len(ob.users) > 0 {
		user := fn.Instruction(ob.users[0])
		if user == nil {
			panic(fmt.Sprintf("localopts: %s has a dangling user %d", old.Ref(), ob.users[0]))
		}
		for n, id := range user.operands {
			if id == old.ID() {
				user.setOperand(n, repl)
			}
		}
	}
}

// Erase removes inst from its block and the arena. The instruction must
// no longer have users.
func (fn *Function) Erase(inst *Instruction) {
	if inst.fn != fn {
		panic(fmt.Sprintf("localopts: instruction %s belongs to another function", inst.Ref()))
	}
	if inst.erased {
		panic(fmt.Sprintf("localopts: instruction %s erased twice", inst.Ref()))
	}
	if len(inst.users) > 0 {
		panic(fmt.Sprintf("localopts: cannot erase %s, it still has %d uses", inst.Ref(), len(inst.users)))
	}

	if inst.block != nil {
		inst.block.unlink(inst)
	}
	inst.dropOperands()
	inst.erased = true
	fn.values[inst.id] = nil
}

// ReplaceAndErase redirects every user of inst to repl and then removes
// inst. The replacement must carry the instruction's type.
func (fn *Function) ReplaceAndErase(inst *Instruction, repl Value) {
	checkSameType(inst, repl)
	fn.ReplaceAllUsesWith(inst, repl)
	fn.Erase(inst)
}

// ReplaceInPlace puts the detached newInst where inst stands, moves all
// users of inst over to it and erases inst. newInst inherits the old
// name when it has none of its own.
func (fn *Function) ReplaceInPlace(inst, newInst *Instruction) {
	checkSameType(inst, newInst)
	if inst.block == nil {
		panic(fmt.Sprintf("localopts: cannot replace detached instruction %s", inst.Ref()))
	}

	inst.block.InsertBefore(newInst, inst)
	if newInst.name == "" {
		newInst.name, inst.name = inst.name, ""
	}
	fn.ReplaceAllUsesWith(inst, newInst)
	fn.Erase(inst)
}

func checkSameType(inst *Instruction, repl Value) {
	if repl == nil {
		panic(fmt.Sprintf("localopts: nil replacement for %s", inst.Ref()))
	}
	if repl.Type() != inst.Type() {
		panic(fmt.Sprintf("localopts: replacement %s of type %s does not match %s of type %s",
			repl.Ref(), repl.Type(), inst.Ref(), inst.Type()))
	}
}
