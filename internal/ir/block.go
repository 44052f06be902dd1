package ir

import "fmt"

// BasicBlock is an ordered list of instructions. Instructions are linked
// through their prev/next handles so a scan can keep its position while
// the current instruction is replaced or erased.
type BasicBlock struct {
	Name string

	fn          *Function
	first, last ValueID
	count       int
}

// Function returns the owning function
func (b *BasicBlock) Function() *Function { return b.fn }

// First returns the first instruction, or nil for an empty block
func (b *BasicBlock) First() *Instruction { return b.fn.Instruction(b.first) }

// Last returns the last instruction, or nil for an empty block
func (b *BasicBlock) Last() *Instruction { return b.fn.Instruction(b.last) }

// Len returns the number of instructions in the block
func (b *BasicBlock) Len() int { return b.count }

// Instructions returns a snapshot of the block's instructions in order
func (b *BasicBlock) Instructions() []*Instruction {
	insts := make([]*Instruction, 0, b.count)
	for inst := b.First(); inst != nil; inst = inst.Next() {
		insts = append(insts, inst)
	}
	return insts
}

// Terminator returns the block's final ret or br, if any
func (b *BasicBlock) Terminator() *Instruction {
	last := b.Last()
	if last != nil && last.op.IsTerminator() {
		return last
	}
	return nil
}

// Append attaches a detached instruction at the end of the block
func (b *BasicBlock) Append(inst *Instruction) {
	b.checkDetached(inst)
	inst.block = b
	inst.prev = b.last
	inst.next = 0
	if b.last != 0 {
		b.fn.Instruction(b.last).next = inst.id
	} else {
		b.first = inst.id
	}
	b.last = inst.id
	b.count++
}

// InsertBefore attaches a detached instruction immediately before pos
func (b *BasicBlock) InsertBefore(inst, pos *Instruction) {
	b.checkDetached(inst)
	if pos.block != b {
		panic(fmt.Sprintf("localopts: insert position %s is not in block %s", pos.Ref(), b.Name))
	}
	inst.block = b
	inst.next = pos.id
	inst.prev = pos.prev
	if pos.prev != 0 {
		b.fn.Instruction(pos.prev).next = inst.id
	} else {
		b.first = inst.id
	}
	pos.prev = inst.id
	b.count++
}

// unlink removes inst from the list without touching its uses
func (b *BasicBlock) unlink(inst *Instruction) {
	if inst.prev != 0 {
		b.fn.Instruction(inst.prev).next = inst.next
	} else {
		b.first = inst.next
	}
	if inst.next != 0 {
		b.fn.Instruction(inst.next).prev = inst.prev
	} else {
		b.last = inst.prev
	}
	inst.block = nil
	inst.prev, inst.next = 0, 0
	b.count--
}

func (b *BasicBlock) checkDetached(inst *Instruction) {
	switch {
	case inst.fn != b.fn:
		panic(fmt.Sprintf("localopts: instruction %s belongs to another function", inst.Ref()))
	case inst.erased:
		panic(fmt.Sprintf("localopts: instruction %s has been erased", inst.Ref()))
	case inst.block != nil:
		panic(fmt.Sprintf("localopts: instruction %s is already in block %s", inst.Ref(), inst.block.Name))
	}
}
