// 9 Apr 2024

/*
Mmtfdump reads an mmtf file and prints a summary: the structure
name, counts of models, chains, residues and atoms, and per chain
the residue count and polymer sequence. It is mostly for checking
what a file contains without firing up anything heavier.

Usage:
	mmtfdump [flags] file.mmtf

The flags are:
	-het=false
		Skip hetero atoms (waters, ligands, ions)
	-std=false
		Skip polymer atoms
	-seq
		Print the one-letter sequence per chain

Compressed files (gzip or zstd) are recognised automatically.
*/
package main
