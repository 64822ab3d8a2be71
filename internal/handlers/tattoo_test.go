package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "inkfolio/internal/handlers"
)

type TattooHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *TattooHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func TestTattooHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TattooHandlerSuite))
}

func (s *TattooHandlerSuite) TestGetAllTattoos() {
	owner := s.env.createUser("gallery-owner")
	s.env.createTattoo(owner.ID, "Gallery piece")

	rr := s.env.do("GET", "/tattoos", "", nil)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := GetAllTattoosResponse{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	Expect(data.Size).To(Equal(1))
	Expect(data.Data[0].Design).To(Equal("Gallery piece"))
	Expect(data.Data[0].Owner).To(Equal(owner.ID))
}

func (s *TattooHandlerSuite) TestGetTattooNotFound() {
	rr := s.env.do("GET", "/tattoos/missing-id", "", nil)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TattooHandlerSuite) TestCreateTattoo() {
	owner := s.env.createUser("creator")

	rr := s.env.do("POST", fmt.Sprintf("/users/%s/tattoos", owner.ID), owner.ID, map[string]any{
		"design": "Serpent back piece",
		"style":  "blackwork",
	})

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := decodeData[UserResponse](rr)

	Expect(data.ID).To(Equal(owner.ID))
	Expect(data.Portfolio).To(HaveLen(1))

	tattooRR := s.env.do("GET", "/tattoos/"+data.Portfolio[0], "", nil)
	Expect(tattooRR.Code).To(Equal(http.StatusOK))

	tattoo := decodeData[TattooResponse](tattooRR)
	Expect(tattoo.Owner).To(Equal(owner.ID))
	Expect(tattoo.Design).To(Equal("Serpent back piece"))
}

func (s *TattooHandlerSuite) TestCreateTattooWithoutToken() {
	owner := s.env.createUser("anonymous-target")

	rr := s.env.do("POST", fmt.Sprintf("/users/%s/tattoos", owner.ID), "", map[string]any{
		"design": "No auth",
	})

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *TattooHandlerSuite) TestCreateTattooValidation() {
	owner := s.env.createUser("strict-owner")

	rr := s.env.do("POST", fmt.Sprintf("/users/%s/tattoos", owner.ID), owner.ID, map[string]any{
		"design": "x",
	})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TattooHandlerSuite) TestUpdateTattoo() {
	owner := s.env.createUser("updater")
	tattoo := s.env.createTattoo(owner.ID, "Before")

	rr := s.env.do("PUT", fmt.Sprintf("/users/%s/tattoos/%s", owner.ID, tattoo.ID), owner.ID, map[string]any{
		"design": "After",
	})

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData[UserResponse](rr)
	Expect(data.Portfolio).To(Equal([]string{tattoo.ID}))

	tattooRR := s.env.do("GET", "/tattoos/"+tattoo.ID, "", nil)
	updated := decodeData[TattooResponse](tattooRR)

	Expect(updated.Design).To(Equal("After"))
}

func (s *TattooHandlerSuite) TestUpdateTattooByAnotherUser() {
	owner := s.env.createUser("rightful-owner")
	intruder := s.env.createUser("intruder")
	tattoo := s.env.createTattoo(owner.ID, "Untouchable")

	rr := s.env.do("PUT", fmt.Sprintf("/users/%s/tattoos/%s", intruder.ID, tattoo.ID), intruder.ID, map[string]any{
		"design": "Hijacked",
	})

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	var body map[string]any
	json.Unmarshal(rr.Body.Bytes(), &body)

	errObj := body["error"].(map[string]any)
	Expect(errObj["code"]).To(Equal("FORBIDDEN"))

	// The tattoo is untouched.
	tattooRR := s.env.do("GET", "/tattoos/"+tattoo.ID, "", nil)
	fetched := decodeData[TattooResponse](tattooRR)

	Expect(fetched.Design).To(Equal("Untouchable"))
	Expect(fetched.Owner).To(Equal(owner.ID))
}

func (s *TattooHandlerSuite) TestDeleteTattoo() {
	owner := s.env.createUser("remover")
	tattoo := s.env.createTattoo(owner.ID, "Fleeting")

	rr := s.env.do("DELETE", fmt.Sprintf("/users/%s/tattoos/%s", owner.ID, tattoo.ID), owner.ID, nil)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData[UserResponse](rr)
	Expect(data.Portfolio).To(BeEmpty())

	tattooRR := s.env.do("GET", "/tattoos/"+tattoo.ID, "", nil)
	Expect(tattooRR.Code).To(Equal(http.StatusNotFound))
}

func (s *TattooHandlerSuite) TestDeleteTattooWithForgedOwnerClaim() {
	owner := s.env.createUser("honest")
	tattoo := s.env.createTattoo(owner.ID, "Claimed")

	rr := s.env.do("DELETE", fmt.Sprintf("/users/%s/tattoos/%s", owner.ID, tattoo.ID), owner.ID, map[string]any{
		"owner": "someone-else",
	})

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	tattooRR := s.env.do("GET", "/tattoos/"+tattoo.ID, "", nil)
	Expect(tattooRR.Code).To(Equal(http.StatusOK))
}

func (s *TattooHandlerSuite) TestDeleteUnknownTattoo() {
	owner := s.env.createUser("confused")

	rr := s.env.do("DELETE", fmt.Sprintf("/users/%s/tattoos/%s", owner.ID, "missing-id"), owner.ID, nil)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}
