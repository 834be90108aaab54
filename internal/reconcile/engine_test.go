package reconcile

import (
	"errors"
	"testing"

	"github.com/dgallion1/pdfindex/internal/toc"
)

func TestReconcile_EndToEndTwoChunks(t *testing.T) {
	chunks := []toc.Chunk{
		{
			Index: 0,
			Candidates: []toc.RawCandidate{
				{Text: "第一章 概述", Page: 1},
				{Text: "1.1 背景介绍", Page: 2, LevelHint: 2},
			},
		},
		{
			Index: 1,
			Candidates: []toc.RawCandidate{
				{Text: "1.1 背景介绍", Page: 2},
				{Text: "1.2 研究目标", Page: 5, LevelHint: 2},
				{Text: "第二章 方法论", Page: 10, LevelHint: 1},
			},
		},
	}

	outline, err := DefaultConfig().Reconcile(chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []toc.OutlineEntry{
		{Title: "第一章 概述", Level: 1, Page: 1},
		{Title: "1.1 背景介绍", Level: 2, Page: 2},
		{Title: "1.2 研究目标", Level: 2, Page: 5},
		{Title: "第二章 方法论", Level: 1, Page: 10},
	}
	if len(outline) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(outline), outline)
	}
	for i := range want {
		if outline[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], outline[i])
		}
	}
}

func TestReconcile_OutputInvariants(t *testing.T) {
	chunks := []toc.Chunk{
		{
			Index: 0,
			Candidates: []toc.RawCandidate{
				{Text: "第一章 引言", Page: 1},
				{Text: "1.1.1 跳级条目", Page: 2},
				{Text: "一、相关工作", Page: 4},
				{Text: "(1) 早期方法", Page: 5},
				{Text: "1.1.1.1 深层", Page: 6},
				{Text: "第二章 实验", Page: 9},
			},
		},
	}

	outline, err := DefaultConfig().Reconcile(chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prevPage, prevLevel := 0, 0
	for i, e := range outline {
		if e.Page < prevPage {
			t.Errorf("entry %d: page %d decreases from %d", i, e.Page, prevPage)
		}
		if prevLevel > 0 && e.Level > prevLevel+1 {
			t.Errorf("entry %d: level %d jumps more than 1 above %d", i, e.Level, prevLevel)
		}
		if e.Level < 1 {
			t.Errorf("entry %d: level %d below 1", i, e.Level)
		}
		prevPage, prevLevel = e.Page, e.Level
	}
}

func TestReconcile_MergeIsIdempotent(t *testing.T) {
	chunks := []toc.Chunk{
		{
			Index: 0,
			Candidates: []toc.RawCandidate{
				{Text: "第一章 概述", Page: 1},
				{Text: "1.1 背景介绍", Page: 2},
				{Text: "第二章 方法", Page: 8},
			},
		},
	}

	cfg := DefaultConfig()
	first, err := cfg.Reconcile(chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Feed the output back as if it were a second, single chunk.
	feedback := toc.Chunk{Index: 0}
	for _, e := range first {
		feedback.Candidates = append(feedback.Candidates, toc.RawCandidate{
			Text: e.Title, Page: e.Page, LevelHint: e.Level,
		})
	}
	second, err := cfg.Reconcile([]toc.Chunk{feedback})
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}

	if len(second) != len(first) {
		t.Fatalf("expected %d entries after re-merge, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d changed on re-merge: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestReconcile_ExactDuplicatesCollapseToOne(t *testing.T) {
	chunks := []toc.Chunk{
		{Index: 0, Candidates: []toc.RawCandidate{{Text: "第一章 概述", Page: 3}}},
		{Index: 1, Candidates: []toc.RawCandidate{{Text: "第一章 概述", Page: 4}}},
	}

	outline, err := DefaultConfig().Reconcile(chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 1 {
		t.Fatalf("expected 1 entry after dedup, got %d", len(outline))
	}
}

func TestReconcile_AllRejectedIsError(t *testing.T) {
	chunks := []toc.Chunk{
		{Index: 0, Candidates: []toc.RawCandidate{
			{Text: "42", Page: 1},
			{Text: "第 3 页", Page: 3},
			{Text: "2024-05-01", Page: 4},
		}},
	}

	_, err := DefaultConfig().Reconcile(chunks)
	var rerr *ReconciliationError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReconciliationError, got %v", err)
	}
}

func TestReconcile_OutOfOrderChunksIsError(t *testing.T) {
	chunks := []toc.Chunk{
		{Index: 1, Candidates: []toc.RawCandidate{{Text: "第二章 方法", Page: 10}}},
		{Index: 0, Candidates: []toc.RawCandidate{{Text: "第一章 概述", Page: 1}}},
	}

	_, err := DefaultConfig().Reconcile(chunks)
	var rerr *ReconciliationError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReconciliationError for out-of-order chunks, got %v", err)
	}
}
