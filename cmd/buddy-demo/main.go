package main

import (
	"fmt"
	"log"

	"buddyarena/allocator"
	"buddyarena/store"
)

func main() {
	s, err := store.New[byte](allocator.Config{
		UniverseSize: 512,
		MinBlockSize: 8,
		MaxBlockSize: 128,
	})
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	msg, ok := s.Alloc(len("hello, buddy"))
	if !ok {
		log.Fatal("Allocation failed")
	}
	copy(s.View(msg), "hello, buddy")

	spacer, ok := s.Alloc(40)
	if !ok {
		log.Fatal("Allocation failed")
	}

	fmt.Printf("msg at %s, spacer at %s\n", msg.Range(), spacer.Range())
	fmt.Printf("data: %s\n", s.View(msg))
	fmt.Println("tree after two allocations:")
	fmt.Print(s.Snapshot())

	spacer.Release()
	s.Tidy()

	fmt.Println("tree after releasing the spacer and tidying:")
	fmt.Print(s.Snapshot())
}
