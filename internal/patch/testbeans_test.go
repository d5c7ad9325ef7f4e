package patch

type itemBean struct {
	ID    *uint  `json:"id"`
	Title string `json:"title"`
}

type ownerBean struct {
	Name  string     `json:"name"`
	Items []itemBean `json:"items"`
}

func idp(v uint) *uint { return &v }

func sampleOwner() ownerBean {
	return ownerBean{
		Name: "John Doe",
		Items: []itemBean{
			{ID: idp(1), Title: "Java 101"},
			{ID: idp(2), Title: "Java 102"},
			{ID: idp(3), Title: "Java 103"},
		},
	}
}
