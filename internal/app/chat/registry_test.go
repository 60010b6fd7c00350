package chat

import "testing"

func TestRegistryJoinLeave(t *testing.T) {
	r := NewRegistry()

	r.Join(Participant{ID: "a", Name: "Ann"})
	r.Join(Participant{ID: "b", Name: "Bob", IsAdmin: true})
	r.Join(Participant{ID: "c", Name: "Cat"})

	if r.Len() != 3 {
		t.Fatalf("len = %d", r.Len())
	}

	r.Join(Participant{ID: "a", Name: "Annie"})
	if r.Len() != 3 {
		t.Fatalf("rejoin created a duplicate: len = %d", r.Len())
	}
	if p, _ := r.Get("a"); p.Name != "Annie" {
		t.Fatalf("rejoin did not replace entry: %+v", p)
	}

	users := r.ListNonAdmin()
	if len(users) != 2 || users[0].ID != "a" || users[1].ID != "c" {
		t.Fatalf("ListNonAdmin = %+v", users)
	}

	if _, ok := r.Leave("b"); !ok {
		t.Fatal("leave of present id reported absent")
	}
	if _, ok := r.Leave("b"); ok {
		t.Fatal("second leave reported present")
	}
	if _, ok := r.Leave("zzz"); ok {
		t.Fatal("leave of unknown id reported present")
	}

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("IDs = %v", ids)
	}
}
