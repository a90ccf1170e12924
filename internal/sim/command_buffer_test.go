package sim

import "testing"

func TestCommandBufferPushDrainFIFO(t *testing.T) {
	buf := NewCommandBuffer(3, nil)
	buf.Push(Command{ActorID: "a"})
	buf.Push(Command{ActorID: "b"})
	buf.Push(Command{ActorID: "c"})

	if buf.Len() != 3 {
		t.Fatalf("expected len 3, got %d", buf.Len())
	}

	drained := buf.Drain()
	if len(drained) != 3 {
		t.Fatalf("expected 3 drained commands, got %d", len(drained))
	}
	if drained[0].ActorID != "a" || drained[1].ActorID != "b" || drained[2].ActorID != "c" {
		t.Fatalf("expected FIFO order, got %+v", drained)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffer empty after drain, got %d", buf.Len())
	}
}

func TestCommandBufferRejectsWhenFull(t *testing.T) {
	buf := NewCommandBuffer(2, nil)
	if !buf.Push(Command{ActorID: "a"}) {
		t.Fatal("expected first push to succeed")
	}
	if !buf.Push(Command{ActorID: "b"}) {
		t.Fatal("expected second push to succeed")
	}
	if buf.Push(Command{ActorID: "c"}) {
		t.Fatal("expected push to fail once buffer is full")
	}
}

func TestCommandBufferDrainOnEmptyReturnsNil(t *testing.T) {
	buf := NewCommandBuffer(2, nil)
	if drained := buf.Drain(); drained != nil {
		t.Fatalf("expected nil drain on empty buffer, got %+v", drained)
	}
}

func TestCommandBufferCapacityFloorsAtOne(t *testing.T) {
	buf := NewCommandBuffer(0, nil)
	if buf.Capacity() != 1 {
		t.Fatalf("expected capacity floored to 1, got %d", buf.Capacity())
	}
}
