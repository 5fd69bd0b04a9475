package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Sample study materials for trying out the pipeline without real course
// documents.
var sampleSubjects = []struct {
	subject  string
	filename string
	intro    string
}{
	{"Mathematics", "calculus", "Calculus fundamentals including derivatives, integrals, and limits."},
	{"Physics", "quantum_mechanics", "Quantum mechanics principles including wave functions and uncertainty."},
	{"Biology", "cell_biology", "Cell structure, organelles, and cellular processes."},
	{"Computer Science", "data_structures", "Arrays, linked lists, trees, and algorithm complexity."},
	{"Chemistry", "organic_chemistry", "Organic compounds, reactions, and molecular structures."},
}

const sampleTemplate = `# %[1]s Study Material

## Introduction
%[2]s

## Key Concepts

### Fundamental Principles
Understanding the basic principles of %[1]s is crucial for mastering advanced topics.

### Important Theories
Several key theories form the foundation of %[1]s:
- Core theory 1: Explains fundamental relationships
- Core theory 2: Describes advanced interactions
- Core theory 3: Provides practical applications

### Applications
%[1]s has numerous real-world applications:
- Application 1: Used in technology and engineering
- Application 2: Important for research and development
- Application 3: Essential for problem-solving

## Examples and Problems

### Example 1
Basic example demonstrating key concepts in %[1]s.

### Example 2
Intermediate example showing practical applications.

### Example 3
Advanced example requiring synthesis of multiple concepts.

## Summary
This material covers the essential concepts needed to understand %[1]s at an introductory level.
Students should focus on mastering these fundamentals before proceeding to advanced topics.
`

func main() {
	outputDir := flag.String("output", "sample_materials", "Directory for the sample files")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create sample directory: %v", err)
	}

	for _, s := range sampleSubjects {
		path := filepath.Join(*outputDir, s.filename+".txt")
		content := fmt.Sprintf(sampleTemplate, s.subject, s.intro)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	fmt.Printf("✅ Created sample materials in %s/\n", *outputDir)
}
