// Package gitodb provides a git-compatible loose object database.
//
// Content is stored under the SHA-1 of its framed form
// ("<type> <size>\x00<content>"), zlib-compressed, at
// objects/<first two hex digits>/<remaining 38>. Objects are written once
// and never modified.
//
// Basic usage:
//
//	db, _ := gitodb.Init(".git")
//
//	// Store content
//	id, _ := db.Put(ctx, gitodb.TypeBlob, []byte("hello world"))
//	fmt.Println(id) // 95d09f2b10159347eece71399a7e2e907ea3df4f
//
//	// Read it back
//	obj, _ := db.Get(ctx, id)
//	fmt.Printf("%s %d %s\n", obj.Type, obj.Size, obj.Content)
//
//	// Abbreviated ids
//	data, _ := db.ReadObject(ctx, "95d09f2b")
//
//	// Integrity check
//	report, _ := db.Verify(ctx)
//	fmt.Println(report.Checked, "objects,", len(report.Problems), "broken")
//
// Tests and tools can run against memory instead of disk:
//
//	db, _ := gitodb.Init("/repo", gitodb.WithFs(afero.NewMemMapFs()))
package gitodb
